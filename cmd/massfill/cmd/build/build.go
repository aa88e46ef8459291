package build

import (
	"context"
	"io"

	"github.com/agentstation/massfill"
	"github.com/agentstation/massfill/internal/cmd/alerts"
	"github.com/agentstation/massfill/internal/cmd/application"
	"github.com/agentstation/massfill/internal/cmd/output"
	"github.com/agentstation/massfill/pkg/logging"
	"github.com/agentstation/massfill/pkg/save"
)

// ExecuteBuild loads the exports, runs the engine, saves the outputs and
// prints the run summary to out. Progress lines and alerts go to progress.
func ExecuteBuild(ctx context.Context, app application.Application, req Request, out, progress io.Writer) error {
	logger := app.Logger()
	ctx = logging.WithLogger(ctx, logger)

	// Step 1: Validate options before touching any file
	format, err := output.ParseFormat(string(output.DetectFormat(app.OutputFormat())))
	if err != nil {
		return err
	}
	saveOpts, err := SaveOptions(req)
	if err != nil {
		return err
	}
	engine, err := massfill.New(EngineOptions(req.Settings)...)
	if err != nil {
		return err
	}

	// Step 2: Load the exports and the template
	ws, err := massfill.Load(ctx, req.Paths, req.Settings.Sheets)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := ws.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("Failed to close template")
		}
	}()

	// Step 3: Populate the template
	res, err := engine.Run(ctx, ws.Documents)
	if err != nil {
		return err
	}

	// Step 4: Save the workbook and reports
	written, err := ws.Save(ctx, res, append(saveOpts, save.WithProgress(progress))...)
	if err != nil {
		return err
	}

	// Step 5: Print the summary and the status alerts
	summary := res.Summary()
	summary.Outputs = written
	table := output.SummaryData(summary, format == output.FormatWide)
	if err := output.Write(out, format, summary, &table); err != nil {
		return err
	}
	return alerts.NewWriter(progress, app.NoColor()).Write(alerts.ForRun(summary)...)
}
