package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/wynn-optimizer/internal/engine/ranking"
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

func validateFormat(format string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("output", format, []string{FormatText, FormatJSON, FormatYAML}, vb)
	return vb.Build()
}

type buildView struct {
	Rank      int            `json:"rank" yaml:"rank"`
	Weapon    string         `json:"weapon" yaml:"weapon"`
	Items     []string       `json:"items" yaml:"items"`
	Score     float64        `json:"score" yaml:"score"`
	Objective float64        `json:"objective" yaml:"objective"`
	Assigned  map[string]int `json:"assigned" yaml:"assigned"`
	Bonus     map[string]int `json:"bonus,omitempty" yaml:"bonus,omitempty"`
}

type statsView struct {
	Seen       int `json:"seen" yaml:"seen"`
	Duplicates int `json:"duplicates" yaml:"duplicates"`
	Rejected   int `json:"rejected" yaml:"rejected"`
	Unresolved int `json:"unresolved" yaml:"unresolved"`
}

type reportView struct {
	RunID       string            `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Reused      bool              `json:"reused,omitempty" yaml:"reused,omitempty"`
	Interrupted bool              `json:"interrupted,omitempty" yaml:"interrupted,omitempty"`
	Reason      string            `json:"reason,omitempty" yaml:"reason,omitempty"`
	Candidates  int               `json:"candidates" yaml:"candidates"`
	Failed      map[string]string `json:"failed,omitempty" yaml:"failed,omitempty"`
	Stats       statsView         `json:"stats" yaml:"stats"`
	Builds      []buildView       `json:"builds" yaml:"builds"`
}

func newReport(r *ranking.Ranking, top int) *reportView {
	rep := &reportView{}
	if r == nil {
		return rep
	}
	rep.Stats = statsView{
		Seen:       r.Stats.Seen,
		Duplicates: r.Stats.Duplicates,
		Rejected:   r.Stats.Rejected,
		Unresolved: r.Stats.Unresolved,
	}
	for i, ranked := range r.Ranked {
		if top > 0 && i >= top {
			break
		}
		rep.Builds = append(rep.Builds, buildView{
			Rank:      i + 1,
			Weapon:    ranked.Build.Weapon.Name,
			Items:     ranked.Build.Names(),
			Score:     ranked.Score,
			Objective: ranked.Objective,
			Assigned:  spMap(ranked.Required),
			Bonus:     spMap(ranked.Bonus),
		})
	}
	return rep
}

func spMap(sp wynn.SkillPoints) map[string]int {
	out := make(map[string]int, len(sp))
	for _, a := range wynn.AllAttributes() {
		if v := sp.Get(a); v != 0 {
			out[a.String()] = v
		}
	}
	return out
}

func writeReport(w io.Writer, format string, rep *reportView) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(rep)
	}

	if rep.RunID != "" {
		fmt.Fprintf(w, "run %s", rep.RunID)
		if rep.Reused {
			fmt.Fprint(w, " (reused)")
		}
		fmt.Fprintln(w)
	}
	if rep.Interrupted {
		fmt.Fprintf(w, "search interrupted (%s), results are partial\n", rep.Reason)
	}
	fmt.Fprintf(w, "%d candidates, %d duplicates, %d rejected, %d unresolved\n",
		rep.Candidates, rep.Stats.Duplicates, rep.Stats.Rejected, rep.Stats.Unresolved)

	names := make([]string, 0, len(rep.Failed))
	for name := range rep.Failed {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "failed %s: %s\n", name, rep.Failed[name])
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSCORE\tWEAPON\tITEMS\tASSIGNED")
	for _, b := range rep.Builds {
		fmt.Fprintf(tw, "%d\t%.2f\t%s\t%s\t%s\n",
			b.Rank, b.Score, b.Weapon, strings.Join(b.Items, ", "), formatSP(b.Assigned))
	}
	return tw.Flush()
}

func formatSP(sp map[string]int) string {
	parts := make([]string, 0, len(sp))
	for _, a := range wynn.AllAttributes() {
		if v, ok := sp[a.String()]; ok {
			parts = append(parts, fmt.Sprintf("%s %d", a.String(), v))
		}
	}
	return strings.Join(parts, " ")
}

// writeValue prints arbitrary catalog data; text falls back to yaml
func writeValue(w io.Writer, format string, v any) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	enc.SetIndent(2)
	return enc.Encode(v)
}
