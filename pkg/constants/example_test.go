package constants_test

import (
	"fmt"

	"github.com/agentstation/massfill/pkg/constants"
)

// Example demonstrates addressing the data region of a template
func Example() {
	salesRows := 12 // rows below the header, instruction rows included
	n := salesRows - constants.DefaultInstructionRows

	fmt.Printf("data rows: %d\n", n)
	fmt.Printf("template rows needed: %d\n", constants.DefaultInstructionRows+n)
	// Output:
	// data rows: 7
	// template rows needed: 12
}

// Example_outputs lists the files written by a run
func Example_outputs() {
	for _, name := range []string{
		constants.OutputWorkbook,
		constants.UnmatchedReport,
		constants.MediaCatalogReport,
	} {
		fmt.Println(name)
	}
	// Output:
	// shopee_mass_upload_output.xlsx
	// unmatched_variations.csv
	// media_variation_catalog.csv
}
