package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leengari/colstore/internal/csvio"
	"github.com/leengari/colstore/internal/engine"
	"github.com/leengari/colstore/internal/exec"
	"github.com/leengari/colstore/internal/render"
)

// Action is the per-command state: flag access plus the loaded relations.
// This command layer is the query-construction collaborator — it builds
// operator trees against the core by column name and owns every bit of text
// parsing (flag terms, CSV values).
type Action struct {
	cmd *cobra.Command
}

func newAction(cmd *cobra.Command) *Action {
	return &Action{cmd: cmd}
}

func (a *Action) getBool(name string) bool {
	result, _ := a.cmd.Flags().GetBool(name)
	return result
}

func (a *Action) getString(name string) string {
	result, _ := a.cmd.Flags().GetString(name)
	return result
}

func (a *Action) getStringArray(name string) []string {
	result, _ := a.cmd.Flags().GetStringArray(name)
	return result
}

func (a *Action) comma() rune {
	s := a.getString("comma")
	if s == "" {
		return ','
	}
	return []rune(s)[0]
}

func (a *Action) load(fname string, selectCols []string) (*engine.Relation, error) {
	return csvio.Load(fname, baseSansExt(fname), a.comma(), selectCols)
}

// emit renders the result or, with --out, saves it as CSV.
func (a *Action) emit(rel *engine.Relation) error {
	if out := a.getString("out"); out != "" {
		return csvio.Save(out, rel, a.comma())
	}
	return render.WriteTable(os.Stdout, rel)
}

func baseSansExt(fname string) string {
	base := filepath.Base(fname)
	return strings.TrimSuffix(base, path.Ext(base))
}

func runShow(cmd *cobra.Command, args []string) error {
	a := newAction(cmd)
	rel, err := a.load(args[0], a.getStringArray("columns"))
	if err != nil {
		return err
	}
	return a.emit(rel)
}

func runProject(cmd *cobra.Command, args []string) error {
	a := newAction(cmd)
	rel, err := a.load(args[0], nil)
	if err != nil {
		return err
	}

	specs := a.getStringArray("columns")
	if len(specs) == 0 {
		return fmt.Errorf("--columns is required")
	}
	cols := make([]exec.OutputColumn, len(specs))
	for i, s := range specs {
		src, as, _ := strings.Cut(s, ":")
		cols[i] = exec.OutputColumn{Source: src, As: as}
	}

	pipe := exec.NewPipeline(rel, exec.NewScan(rel), cols)
	pipe.AddObserver(exec.NewLoggingObserver())
	out, err := pipe.Run()
	if err != nil {
		return err
	}
	return a.emit(out)
}

func runFilter(cmd *cobra.Command, args []string) error {
	a := newAction(cmd)
	rel, err := a.load(args[0], nil)
	if err != nil {
		return err
	}

	pred, err := buildPredicate(rel, a.getStringArray("where"))
	if err != nil {
		return err
	}
	filter, err := exec.NewFilter(exec.NewScan(rel), pred)
	if err != nil {
		return err
	}

	out, err := exec.NewPipeline(rel, filter, nil).Run()
	if err != nil {
		return err
	}
	return a.emit(out)
}

func runAggregate(cmd *cobra.Command, args []string) error {
	a := newAction(cmd)
	rel, err := a.load(args[0], nil)
	if err != nil {
		return err
	}

	var aggs []exec.AggSpec
	for _, s := range a.getStringArray("agg") {
		fn, col, ok := strings.Cut(s, ":")
		if !ok {
			return fmt.Errorf("invalid --agg %q: want func:column", s)
		}
		aggs = append(aggs, exec.AggSpec{Func: exec.AggFunc(fn), Column: col})
	}

	out, err := exec.Aggregate(rel, exec.NewScan(rel), a.getStringArray("group-by"), aggs)
	if err != nil {
		return err
	}
	return a.emit(out)
}

func runJoin(cmd *cobra.Command, args []string) error {
	a := newAction(cmd)
	left, err := a.load(args[0], nil)
	if err != nil {
		return err
	}
	right, err := a.load(args[1], nil)
	if err != nil {
		return err
	}

	lkey, rkey, ok := strings.Cut(a.getString("on"), "=")
	if !ok {
		return fmt.Errorf("--on is required as leftcol=rightcol")
	}

	spec := exec.JoinSpec{LeftKey: lkey, RightKey: rkey}
	switch a.getString("strategy") {
	case "nested-loop":
		spec.Strategy = exec.NestedLoop
	case "sort-merge":
		spec.Strategy = exec.SortMerge
	case "hash":
		spec.Strategy = exec.Hash
	default:
		return fmt.Errorf("unknown join strategy %q", a.getString("strategy"))
	}

	if a.getBool("index") {
		idx, err := engine.BuildIndex(right, rkey)
		if err != nil {
			return err
		}
		spec.RightIndex = idx
	}

	out, err := exec.ExecuteJoin(left, right, spec)
	if err != nil {
		return err
	}
	return a.emit(out)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	a := newAction(cmd)
	rel, err := a.load(args[0], nil)
	if err != nil {
		return err
	}

	pred, err := buildPredicate(rel, a.getStringArray("where"))
	if err != nil {
		return err
	}

	var assigns []exec.Assignment
	for _, s := range a.getStringArray("set") {
		col, raw, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q: want column=value", s)
		}
		v, err := parseValue(rel, col, raw)
		if err != nil {
			return err
		}
		assigns = append(assigns, exec.Assignment{Column: col, Value: v})
	}

	n, err := exec.Update(rel, pred, assigns)
	if err != nil {
		return err
	}
	fmt.Printf("UPDATE %d\n", n)
	return a.emit(rel)
}

func runLookup(cmd *cobra.Command, args []string) error {
	a := newAction(cmd)
	rel, err := a.load(args[0], nil)
	if err != nil {
		return err
	}

	column := a.getString("column")
	if column == "" {
		return fmt.Errorf("--column is required")
	}
	key, err := parseValue(rel, column, a.getString("value"))
	if err != nil {
		return err
	}

	idx, err := engine.BuildIndex(rel, column)
	if err != nil {
		return err
	}
	scan, err := exec.NewIndexScan(rel, idx, key)
	if err != nil {
		return err
	}

	out, err := exec.NewPipeline(rel, scan, nil).Run()
	if err != nil {
		return err
	}
	return a.emit(out)
}

// buildPredicate turns --where terms (column:op:value) into an ANDed
// predicate tree. The colon delimiter keeps operators like >= and !=
// unambiguous. An empty list matches every row.
func buildPredicate(rel *engine.Relation, terms []string) (exec.Predicate, error) {
	var pred exec.Predicate
	for _, term := range terms {
		parts := strings.SplitN(term, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid --where %q: want column:op:value", term)
		}
		v, err := parseValue(rel, parts[0], parts[2])
		if err != nil {
			return nil, err
		}
		p, err := exec.Compare(rel, parts[0], exec.CompareOp(parts[1]), v)
		if err != nil {
			return nil, err
		}
		if pred == nil {
			pred = p
		} else {
			pred = exec.And(pred, p)
		}
	}
	if pred == nil {
		return matchAll{}, nil
	}
	return pred, nil
}

type matchAll struct{}

func (matchAll) Eval(int) (bool, error) { return true, nil }

// parseValue parses raw text into the declared type of the target column.
func parseValue(rel *engine.Relation, column, raw string) (engine.Value, error) {
	col, err := rel.Column(column)
	if err != nil {
		return engine.Value{}, err
	}
	if raw == "" {
		return engine.Absent(col.Type()), nil
	}
	switch col.Type() {
	case engine.TypeInt:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return engine.Value{}, fmt.Errorf("parsing %q as int: %w", raw, err)
		}
		return engine.Int(i), nil
	case engine.TypeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return engine.Value{}, fmt.Errorf("parsing %q as float: %w", raw, err)
		}
		return engine.Float(f), nil
	case engine.TypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return engine.Value{}, fmt.Errorf("parsing %q as bool: %w", raw, err)
		}
		return engine.Bool(b), nil
	default:
		return engine.Text(raw), nil
	}
}
