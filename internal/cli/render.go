package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/msomdec/kennel/internal/domain"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

type dogJSON struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Breed string `json:"breed"`
}

// renderDogs writes dogs as a table or, for the json mode, as an array.
func renderDogs(w io.Writer, mode string, dogs []domain.Dog) error {
	if mode == outputJSON {
		out := make([]dogJSON, 0, len(dogs))
		for _, d := range dogs {
			out = append(out, dogJSON{ID: d.ID, Name: d.Name, Breed: d.Breed})
		}
		return renderJSON(w, out)
	}

	if len(dogs) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Breed"})
	for _, d := range dogs {
		t.AppendRow(table.Row{d.ID, d.Name, d.Breed})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(dogs))
	return nil
}

// renderDog writes a single dog, as an object in json mode.
func renderDog(w io.Writer, mode string, dog *domain.Dog) error {
	if mode == outputJSON {
		return renderJSON(w, dogJSON{ID: dog.ID, Name: dog.Name, Breed: dog.Breed})
	}
	return renderDogs(w, mode, []domain.Dog{*dog})
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
