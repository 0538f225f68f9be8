package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/ardnew/tnsora/pkg"
)

// Version prints the program name and version.
type Version struct{}

// Run executes the version command.
func (*Version) Run(ctx context.Context) error {
	return write(ctx, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, pkg.Name, pkg.Version())

		return err
	})
}
