package media

import (
	"fmt"
	"strings"
)

// TransformOptions enumerates the recognized delivery transformations.
// Unknown query keys are dropped by the handler before this struct is built,
// so the URL shape is fully determined by these five fields.
type TransformOptions struct {
	Width   int
	Height  int
	Crop    string
	Quality string
	Format  string
}

func (o TransformOptions) withDefaults() TransformOptions {
	if o.Width == 0 {
		o.Width = 800
	}
	if o.Crop == "" {
		o.Crop = "limit"
	}
	if o.Quality == "" {
		o.Quality = "auto"
	}
	if o.Format == "" {
		o.Format = "auto"
	}
	return o
}

// Transformation renders the Cloudinary transformation component, e.g.
// "c_limit,w_800,q_auto,f_auto". Height is omitted when unset.
func (o TransformOptions) Transformation() string {
	o = o.withDefaults()
	parts := []string{
		"c_" + o.Crop,
		fmt.Sprintf("w_%d", o.Width),
	}
	if o.Height > 0 {
		parts = append(parts, fmt.Sprintf("h_%d", o.Height))
	}
	parts = append(parts, "q_"+o.Quality, "f_"+o.Format)
	return strings.Join(parts, ",")
}
