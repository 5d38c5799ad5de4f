package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"shopswift/internal/catalog"
	"shopswift/internal/importer"
)

// importer checks a catalog CSV file without starting the API. Point
// CATALOG_FILE at a file that passes to serve it.
func main() {
	var (
		filePath string
		list     bool
	)
	flag.StringVar(&filePath, "file", "", "Path to catalog CSV")
	flag.BoolVar(&list, "list", false, "Print every parsed product")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	start := time.Now()
	products, err := importer.ReadProducts(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid catalog: %v\n", err)
		os.Exit(1)
	}

	c := catalog.New(products)
	stats := c.Stats()

	if list {
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tIN STOCK")
		for _, p := range c.List(catalog.Filter{}) {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.InStock)
		}
		tw.Flush()
	}

	fmt.Printf("Parsed %d products (%d in stock, %d out of stock) from %s in %s\n",
		stats.Total, stats.InStock, stats.OutOfStock, filePath, time.Since(start).Truncate(time.Millisecond))
}
