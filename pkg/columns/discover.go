package columns

import (
	"fmt"
	"strconv"

	"github.com/agentstation/massfill/internal/matcher"
	"github.com/agentstation/massfill/pkg/constants"
	"github.com/agentstation/massfill/pkg/errors"
)

var caseInsensitive = &matcher.Options{CaseInsensitive: true, Anchored: true}

// Option slot spellings. Each pattern captures the slot index.
var (
	slotNamePatterns = matcher.MustNewMultiMatcher([]string{
		`et_title_option_(\d+)_for_variation_1`,
		`option\s*(\d+)\s*name`,
		`option\s*name\s*(\d+)`,
	}, matcher.Regex, caseInsensitive)

	slotImagePatterns = matcher.MustNewMultiMatcher([]string{
		`et_title_option_image_(\d+)_for_variation_1`,
		`option\s*(\d+)\s*image`,
		`option\s*image\s*(\d+)`,
	}, matcher.Regex, caseInsensitive)
)

// ImageDestinationPatterns locate the per-variation image column of a
// template, in priority order.
var ImageDestinationPatterns = []string{
	`(?i)image\s*per\s*variation`,
	`(?i)et_title_image_per_variation`,
}

var imageDestination = matcher.MustNewMultiMatcher(ImageDestinationPatterns, matcher.Regex)

// Slot is one option name/image column pair of a media document.
type Slot struct {
	Index    int // 1-based slot number
	NameCol  int
	ImageCol int
}

// slotIndex reports the slot number captured by mm, bounded to the
// supported slot range.
func slotIndex(mm *matcher.MultiMatcher, name string) (int, bool) {
	sub, ok := mm.Capture(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(sub)
	if err != nil || n < 1 || n > constants.MaxOptionSlots {
		return 0, false
	}
	return n, true
}

// DiscoverSlots returns the eligible option slots of a media document in
// slot order. A slot is eligible only when both its name and image columns
// exist; incomplete slots are skipped.
func DiscoverSlots(ix *Index) []Slot {
	var names, images [constants.MaxOptionSlots + 1]int
	for i := range names {
		names[i], images[i] = -1, -1
	}

	for col, name := range ix.names {
		// image first: "option image 3" must not read as a name column
		if n, ok := slotIndex(slotImagePatterns, name); ok {
			if images[n] < 0 {
				images[n] = col
			}
			continue
		}
		if n, ok := slotIndex(slotNamePatterns, name); ok && names[n] < 0 {
			names[n] = col
		}
	}

	var slots []Slot
	for n := 1; n <= constants.MaxOptionSlots; n++ {
		if names[n] >= 0 && images[n] >= 0 {
			slots = append(slots, Slot{Index: n, NameCol: names[n], ImageCol: images[n]})
		}
	}
	return slots
}

// LocateImageColumn finds the template column receiving the per-variation
// image. Patterns are tried in order; within a pattern the leftmost column
// wins. It fails with a MissingColumnError when no column matches.
func LocateImageColumn(ix *Index) (int, error) {
	if i := imageDestination.First(ix.names...); i >= 0 {
		return i, nil
	}
	return -1, errors.NewMissingColumnError("template", "image per variation", ImageDestinationPatterns)
}

// Gallery holds the positions of per-product image columns: a cover image
// and up to MaxGalleryImages item images. Absent columns are -1.
type Gallery struct {
	Cover  int
	Images [constants.MaxGalleryImages]int
}

// Any reports whether at least one gallery column exists.
func (g Gallery) Any() bool {
	if g.Cover >= 0 {
		return true
	}
	for _, c := range g.Images {
		if c >= 0 {
			return true
		}
	}
	return false
}

func lookupOr(ix *Index, name string) int {
	if i, ok := ix.Lookup(name); ok {
		return i
	}
	return -1
}

// SourceGallery locates et_title_image_1 (cover) and et_title_image_2..9 in
// a media document.
func SourceGallery(ix *Index) Gallery {
	g := Gallery{Cover: lookupOr(ix, constants.ColCoverImage)}
	for k := range g.Images {
		g.Images[k] = lookupOr(ix, fmt.Sprintf("et_title_image_%d", k+2))
	}
	return g
}

// TemplateGallery locates ps_item_cover_image and ps_item_image_1..8 in a
// template.
func TemplateGallery(ix *Index) Gallery {
	g := Gallery{Cover: lookupOr(ix, constants.TplCoverImage)}
	for k := range g.Images {
		g.Images[k] = lookupOr(ix, fmt.Sprintf("ps_item_image_%d", k+1))
	}
	return g
}

// Role classifies a column for inspection output.
type Role string

const (
	RoleNone             Role = ""
	RoleSlotName         Role = "slot-name"
	RoleSlotImage        Role = "slot-image"
	RoleImageDestination Role = "image-destination"
	RoleCover            Role = "cover"
	RoleGallery          Role = "gallery"
)

// Column describes one column of a sheet.
type Column struct {
	Position int    `json:"position" yaml:"position"`
	Label    string `json:"label" yaml:"label"`
	Name     string `json:"name" yaml:"name"`
	Role     Role   `json:"role,omitempty" yaml:"role,omitempty"`
	Slot     int    `json:"slot,omitempty" yaml:"slot,omitempty"`
}

// Describe returns every column of ix with its detected role.
func Describe(ix *Index) []Column {
	out := make([]Column, ix.Len())
	for i := range out {
		out[i] = Column{Position: i, Label: ix.labels[i], Name: ix.names[i]}
	}

	for _, s := range DiscoverSlots(ix) {
		out[s.NameCol].Role, out[s.NameCol].Slot = RoleSlotName, s.Index
		out[s.ImageCol].Role, out[s.ImageCol].Slot = RoleSlotImage, s.Index
	}
	if i, err := LocateImageColumn(ix); err == nil {
		out[i].Role = RoleImageDestination
	}
	for _, g := range []Gallery{SourceGallery(ix), TemplateGallery(ix)} {
		if g.Cover >= 0 {
			out[g.Cover].Role = RoleCover
		}
		for k, c := range g.Images {
			if c >= 0 {
				out[c].Role, out[c].Slot = RoleGallery, k+1
			}
		}
	}
	return out
}
