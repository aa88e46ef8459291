package media

import (
	"cmp"
	"context"
	"strings"

	"github.com/agentstation/massfill/pkg/columns"
	"github.com/agentstation/massfill/pkg/constants"
	"github.com/agentstation/massfill/pkg/keys"
	"github.com/agentstation/massfill/pkg/logging"
	"github.com/agentstation/massfill/pkg/sheet"
)

// Images are the product-level images of one product. Gallery keeps the
// source positions, so Gallery[k] is item image k+1 and may be empty.
type Images struct {
	Cover   string
	Gallery [constants.MaxGalleryImages]string
}

func (im Images) empty() bool {
	if im.Cover != "" {
		return false
	}
	for _, g := range im.Gallery {
		if g != "" {
			return false
		}
	}
	return true
}

// compareImages orders image sets field by field, cover first. An empty
// field sorts after any image.
func compareImages(a, b Images) int {
	fa := append([]string{a.Cover}, a.Gallery[:]...)
	fb := append([]string{b.Cover}, b.Gallery[:]...)
	for i := range fa {
		switch {
		case fa[i] == fb[i]:
			continue
		case fa[i] == "":
			return 1
		case fb[i] == "":
			return -1
		}
		return cmp.Compare(fa[i], fb[i])
	}
	return 0
}

// ProductImages collects cover and gallery images per numeric product id.
// When several rows of a product carry images, the smallest set under
// compareImages wins, so the result does not depend on row order. It
// returns nil when the media document has no cover or gallery columns.
func ProductImages(ctx context.Context, t *sheet.Table) map[keys.ID]Images {
	ix := columns.NewIndex(t.Labels)
	idCol, ok := ix.Lookup(constants.ColProductID)
	if !ok {
		return nil
	}
	g := columns.SourceGallery(ix)
	if !g.Any() {
		return nil
	}

	cell := func(r, c int) string {
		if c < 0 {
			return ""
		}
		return strings.TrimSpace(t.At(r, c).String())
	}

	out := make(map[keys.ID]Images)
	for r := range t.Rows {
		id, ok := keys.CanonicalID(t.At(r, idCol).String())
		if !ok || !id.IsNumeric() {
			continue
		}
		im := Images{Cover: cell(r, g.Cover)}
		for k, c := range g.Images {
			im.Gallery[k] = cell(r, c)
		}
		if im.empty() {
			continue
		}
		if prev, seen := out[id]; !seen || compareImages(im, prev) < 0 {
			out[id] = im
		}
	}

	logging.FromContext(ctx).Debug().
		Str("document", Document).
		Int("products", len(out)).
		Msg("Collected product images")
	return out
}
