// Package browser is the read-only table viewer behind cmd/viewdb. It lists
// the store's tables by display name, reads a selection and prints the chosen
// table as " | "-delimited text.
package browser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ordersnf/internal/ddl"
	"ordersnf/internal/schema"
	"ordersnf/internal/storage"
)

// Operator-facing messages.
const (
	PromptTitle     = "Выберите таблицу для просмотра:"
	PromptInput     = "Введите номер таблицы: "
	MsgOutOfRange   = "Некорректный номер!"
	MsgNotNumber    = "Введите число!"
	ruleWidth       = 80
	columnSeparator = " | "
)

var (
	// ErrNotNumber is returned by Choose for input that is not an integer.
	ErrNotNumber = errors.New("browser: selection is not a number")
	// ErrOutOfRange is returned by Choose for a number outside the menu.
	ErrOutOfRange = errors.New("browser: selection out of range")
	// ErrUnknownTable is returned by Dump for a table the schema does not declare.
	ErrUnknownTable = errors.New("browser: unknown table")
)

// Menu writes the numbered list of tables.
func Menu(w io.Writer, tables []ddl.TableDef) error {
	if _, err := fmt.Fprintln(w, PromptTitle); err != nil {
		return err
	}
	for i, t := range tables {
		if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, t.Display); err != nil {
			return err
		}
	}
	return nil
}

// Choose parses a 1-based menu selection and returns the 0-based index.
func Choose(input string, n int) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, ErrNotNumber
	}
	if i < 1 || i > n {
		return 0, ErrOutOfRange
	}
	return i - 1, nil
}

// PrintTable writes every row of def: a title line, the column names, an
// 80-character rule and one line per row.
func PrintTable(ctx context.Context, w io.Writer, repo storage.Repository, def ddl.TableDef) error {
	cols := def.ColumnNames()
	rows, err := repo.Select(ctx, def.Name, cols, def.PrimaryKey())
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "\nТаблица: %s\n", def.Name)
	fmt.Fprintln(bw, strings.Join(cols, columnSeparator))
	fmt.Fprintln(bw, strings.Repeat("-", ruleWidth))
	cells := make([]string, len(cols))
	for _, r := range rows {
		for i, v := range r {
			cells[i] = FormatValue(v)
		}
		fmt.Fprintln(bw, strings.Join(cells, columnSeparator))
	}
	fmt.Fprintln(bw)
	return bw.Flush()
}

// FormatValue renders a stored value; NULL stands for a missing value.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case string:
		return t
	case []byte:
		return string(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// Run shows the menu, reads one line from in and prints the selected table.
// Bad input produces a message on out and a nil error; only store and
// output failures are returned.
func Run(ctx context.Context, repo storage.Repository, in io.Reader, out io.Writer) error {
	tables := schema.Tables()
	if err := Menu(out, tables); err != nil {
		return err
	}
	if _, err := io.WriteString(out, PromptInput); err != nil {
		return err
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("browser: read selection: %w", err)
	}

	idx, err := Choose(line, len(tables))
	switch {
	case errors.Is(err, ErrNotNumber):
		_, err = fmt.Fprintln(out, MsgNotNumber)
		return err
	case errors.Is(err, ErrOutOfRange):
		_, err = fmt.Fprintln(out, MsgOutOfRange)
		return err
	}
	return PrintTable(ctx, out, repo, tables[idx])
}

// Dump prints the table called name without prompting.
func Dump(ctx context.Context, repo storage.Repository, out io.Writer, name string) error {
	def, ok := schema.Lookup(strings.TrimSpace(name))
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownTable, name)
	}
	return PrintTable(ctx, out, repo, def)
}
