// Package random fills records with arbitrary but valid field values. Every
// value is produced in canonical string form and written through
// Schema.SetValue, so generated records always round-trip.
package random

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/tuannm99/reflected/internal/codec"
	"github.com/tuannm99/reflected/internal/fieldtype"
	"github.com/tuannm99/reflected/internal/record"
)

// emailMarker makes text fields whose name contains it receive an email
// address instead of random letters.
const emailMarker = "email"

type Config struct {
	Seed        uint64  `mapstructure:"seed"` // 0 picks a random seed
	TextLength  int     `mapstructure:"text_length"`
	NullRatio   float64 `mapstructure:"null_ratio"`
	MaxNumber   int     `mapstructure:"max_number"`
	MaxDuration int     `mapstructure:"max_duration"` // seconds
}

func DefaultConfig() Config {
	return Config{
		TextLength:  16,
		NullRatio:   0.5,
		MaxNumber:   100,
		MaxDuration: 100,
	}
}

// Generator is not safe for concurrent use.
type Generator struct {
	cfg   Config
	faker *gofakeit.Faker
	now   func() time.Time
}

type Option func(*Generator)

// WithConfig replaces the defaults. Non-positive lengths and ranges fall back
// to DefaultConfig.
func WithConfig(c Config) Option {
	return func(g *Generator) { g.cfg = c }
}

// WithClock sets the source of Date/DateTime values.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithFaker injects the randomness source directly; the Seed from Config is
// then ignored.
func WithFaker(f *gofakeit.Faker) Option {
	return func(g *Generator) { g.faker = f }
}

func New(opts ...Option) *Generator {
	g := &Generator{cfg: DefaultConfig(), now: time.Now}
	for _, opt := range opts {
		opt(g)
	}

	def := DefaultConfig()
	if g.cfg.TextLength <= 0 {
		g.cfg.TextLength = def.TextLength
	}
	if g.cfg.MaxNumber <= 0 {
		g.cfg.MaxNumber = def.MaxNumber
	}
	if g.cfg.MaxDuration <= 0 {
		g.cfg.MaxDuration = def.MaxDuration
	}
	if g.cfg.NullRatio < 0 || g.cfg.NullRatio > 1 {
		g.cfg.NullRatio = def.NullRatio
	}
	if g.faker == nil {
		g.faker = gofakeit.New(g.cfg.Seed)
	}
	return g
}

func (g *Generator) Config() Config { return g.cfg }

// Value returns a canonical string for field f, or nil for an absent
// optional. Enum fields have no canonical form and panic.
func Value[R any](g *Generator, f record.Field[R]) *string {
	if f.IsEnum() {
		panic(fmt.Errorf("%w: %s", record.ErrUnsupportedField, f))
	}
	return g.value(f.Name, f.Type)
}

func (g *Generator) value(name string, tp fieldtype.Type) *string {
	if tp.IsOptional() {
		if g.faker.Float64Range(0, 1) < g.cfg.NullRatio {
			return nil
		}
		return g.value(name, tp.Base())
	}

	var s string
	switch tp.Kind() {
	case fieldtype.KindText:
		if strings.Contains(name, emailMarker) {
			s = g.faker.Email()
		} else {
			s = g.faker.LetterN(uint(g.cfg.TextLength))
		}
	case fieldtype.KindInteger:
		s = strconv.Itoa(g.faker.Number(0, g.cfg.MaxNumber))
	case fieldtype.KindFloat:
		s = strconv.Itoa(g.faker.Number(0, g.cfg.MaxNumber)) + ".0"
	case fieldtype.KindDecimal:
		scale := g.faker.Number(1, 5)
		s = codec.Decimal().Encode(decimal.New(int64(g.faker.Uint32()), -int32(scale)))
	case fieldtype.KindBool:
		s = strconv.Itoa(g.faker.Number(0, 1))
	case fieldtype.KindDate, fieldtype.KindDateTime:
		s = codec.Date().Encode(g.now())
	case fieldtype.KindDuration:
		s = strconv.Itoa(g.faker.Number(0, g.cfg.MaxDuration))
	default:
		panic(fmt.Sprintf("random: unhandled type %s", tp))
	}
	return &s
}

// Fill overwrites every codec field of rec. Enum fields keep their value.
func Fill[R any](g *Generator, s *record.Schema[R], rec *R) error {
	for _, f := range s.Fields() {
		if f.IsEnum() {
			continue
		}
		if err := s.SetValue(rec, f, g.value(f.Name, f.Type)); err != nil {
			return fmt.Errorf("random: fill %s: %w", s.TypeName(), err)
		}
	}
	slog.Debug("random:: fill", "type", s.TypeName())
	return nil
}

// Make returns a new record from s.New with every codec field filled.
func Make[R any](g *Generator, s *record.Schema[R]) (*R, error) {
	rec := s.New()
	if err := Fill(g, s, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// MakeN returns n records.
func MakeN[R any](g *Generator, s *record.Schema[R], n int) ([]*R, error) {
	out := make([]*R, 0, n)
	for range n {
		rec, err := Make(g, s)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
