package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shashiranjanraj/megamart/pkg/router"
)

// PrintRoutes writes the named route table sorted by path then method.
func (a *Application) PrintRoutes(out io.Writer) error {
	routes := a.Router().SortedRoutes()
	if len(routes) == 0 {
		_, err := fmt.Fprintln(out, "No named routes registered.")
		return err
	}
	return writeRoutes(out, routes)
}

func writeRoutes(out io.Writer, routes []router.Route) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tNAME")
	fmt.Fprintln(w, "------\t----\t----")
	for _, ri := range routes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return w.Flush()
}
