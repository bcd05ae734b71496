package cli

import (
	"fmt"
	"io"

	"github.com/ossa-labs/ossa/internal/validate"
)

// renderResult prints a validation result's diagnostics: every error with
// path and code, every warning with its recommendation when present.
func renderResult(w io.Writer, res *validate.Result) {
	for _, d := range res.Errors {
		path := d.Path
		if path == "" {
			path = "(document)"
		}
		fmt.Fprintf(w, "error   %-28s %s  %s\n", d.Code, path, d.Message)
	}
	for _, d := range res.Warnings {
		path := d.Path
		if path == "" {
			path = "(document)"
		}
		fmt.Fprintf(w, "warning %-28s %s  %s\n", d.Code, path, d.Message)
		if d.Recommendation != "" {
			fmt.Fprintf(w, "        %-28s %s  recommendation: %s\n", "", path, d.Recommendation)
		}
	}
}
