// Package shell implements the line commands of the interactive record
// editor. The readline loop lives in cmd/reflected; a Session only parses
// and executes one line at a time.
package shell

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tuannm99/reflected/internal/random"
	"github.com/tuannm99/reflected/internal/schemadef"
)

var (
	ErrQuit           = errors.New("shell: quit")
	ErrUnknownCommand = errors.New("shell: unknown command")
	ErrUsage          = errors.New("shell: usage")
	ErrNoStore        = errors.New("shell: no store configured")
	ErrUnknownField   = errors.New("shell: unknown field")
)

// RowStore is the persistence a session needs; *store.Store[schemadef.Row]
// satisfies it.
type RowStore interface {
	Put(rec *schemadef.Row) (string, error)
	Get(key string) (*schemadef.Row, error)
}

type Session struct {
	model   *schemadef.Model
	gen     *random.Generator
	store   RowStore
	history *History
	out     io.Writer

	row *schemadef.Row
	key string // key of the last save/load
}

type Option func(*Session)

func WithStore(st RowStore) Option { return func(s *Session) { s.store = st } }

func WithHistory(h *History) Option { return func(s *Session) { s.history = h } }

func WithGenerator(g *random.Generator) Option { return func(s *Session) { s.gen = g } }

func NewSession(m *schemadef.Model, out io.Writer, opts ...Option) *Session {
	s := &Session{model: m, out: out, row: m.New()}
	for _, opt := range opts {
		opt(s)
	}
	if s.gen == nil {
		s.gen = random.New()
	}
	return s
}

func (s *Session) Row() *schemadef.Row { return s.row }
func (s *Session) Prompt() string      { return strings.ToLower(s.model.Schema.TypeName()) + "> " }

// Key is the store key of the last save or load, "" for a new record.
func (s *Session) Key() string { return s.key }

// Exec runs one command line. It returns ErrQuit for quit/exit; other
// errors are meant to be printed and the loop continued.
func (s *Session) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	slog.Debug("shell:: exec", "cmd", cmd)

	switch cmd {
	case "quit", "exit", `\q`:
		return ErrQuit
	case "help", `\help`:
		s.help()
		return nil
	case "fields":
		s.fields()
		return nil
	case "show":
		s.show()
		return nil
	case "get":
		return s.get(rest)
	case "set":
		name, value, ok := strings.Cut(rest, " ")
		if !ok || name == "" {
			return fmt.Errorf("%w: set <field> <value>", ErrUsage)
		}
		return s.set(name, &value)
	case "unset":
		if rest == "" {
			return fmt.Errorf("%w: unset <field>", ErrUsage)
		}
		return s.set(rest, nil)
	case "new":
		s.row, s.key = s.model.New(), ""
		return nil
	case "random":
		if err := random.Fill(s.gen, s.model.Schema, s.row); err != nil {
			return err
		}
		s.show()
		return nil
	case "save":
		return s.save()
	case "load":
		if rest == "" {
			return fmt.Errorf("%w: load <key>", ErrUsage)
		}
		return s.load(rest)
	case "history", `\history`:
		if s.history != nil {
			n, _ := strconv.Atoi(rest)
			s.history.Print(s.out, n)
		}
		return nil
	}
	return fmt.Errorf("%w: %s (try help)", ErrUnknownCommand, cmd)
}

func (s *Session) help() {
	fmt.Fprintln(s.out, `commands:
  fields                 list fields of the record type
  show                   print every field of the current record
  get <field>            print one field
  set <field> <value>    assign a field from its canonical string
  unset <field>          clear an optional field (NULL)
  new                    start a fresh record
  random                 fill every field with random values
  save                   store the current record and print its key
  load <key>             load a stored record
  history [n]            print the last n commands
  quit | exit            leave the shell`)
}

func (s *Session) fields() {
	fields := s.model.Schema.Fields()
	rows := make([][]string, len(fields))
	for i, f := range fields {
		var flags []string
		if f.IsID() {
			flags = append(flags, "id")
		}
		if f.IsForeignKey() {
			flags = append(flags, "fk")
		}
		if f.IsOptional() {
			flags = append(flags, "optional")
		}
		rows[i] = []string{f.Name, f.Type.String(), f.TypeName, strings.Join(flags, ",")}
	}
	PrintTable(s.out, []string{"field", "type", "go type", "flags"}, rows)
}

func (s *Session) show() {
	sc := s.model.Schema
	fields := sc.Fields()
	rows := make([][]string, len(fields))
	for i, f := range fields {
		rows[i] = []string{f.Name, sc.Format(s.row, f)}
	}
	PrintTable(s.out, []string{"field", "value"}, rows)
}

func (s *Session) get(name string) error {
	f, ok := s.model.Schema.LookupField(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	fmt.Fprintln(s.out, s.model.Schema.Format(s.row, f))
	return nil
}

func (s *Session) set(name string, v *string) error {
	if _, ok := s.model.Schema.LookupField(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return s.model.Set(s.row, name, v)
}

func (s *Session) save() error {
	if s.store == nil {
		return ErrNoStore
	}
	key, err := s.store.Put(s.row)
	if err != nil {
		return err
	}
	s.key = key
	fmt.Fprintln(s.out, key)
	return nil
}

func (s *Session) load(key string) error {
	if s.store == nil {
		return ErrNoStore
	}
	row, err := s.store.Get(key)
	if err != nil {
		return err
	}
	s.row, s.key = row, key
	s.show()
	return nil
}
