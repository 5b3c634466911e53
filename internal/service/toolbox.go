package service

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// WelcomeMessage is the body of the root endpoint.
const WelcomeMessage = "Welcome to the Toolbox API!"

// DateLayout is the ISO-8601 calendar date layout (YYYY-MM-DD).
const DateLayout = "2006-01-02"

var (
	// ErrDivisionByZero is returned by Divide when the divisor is zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrResultOutOfRange is returned by Divide when the quotient does not fit a float64.
	ErrResultOutOfRange = errors.New("division result out of float64 range")
)

// ToolboxService implements the utility endpoints.
//
// All methods are pure functions of their arguments and, for the calendar
// methods, of clock.Now() observed in location.
type ToolboxService struct {
	clock    Clock
	location *time.Location
}

// NewToolboxService returns a ToolboxService. A nil location means time.Local.
func NewToolboxService(clock Clock, location *time.Location) *ToolboxService {
	if location == nil {
		location = time.Local
	}
	return &ToolboxService{clock: clock, location: location}
}

func (s *ToolboxService) Welcome() string {
	return WelcomeMessage
}

func (s *ToolboxService) Echo(text string) string {
	return text
}

// IsPalindrome reports whether text reads the same reversed, code point by
// code point. Case and whitespace are significant.
func (s *ToolboxService) IsPalindrome(text string) bool {
	return text == Reverse(text)
}

// Reverse returns text with its runes in reverse order.
func Reverse(text string) string {
	runes := []rune(text)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// ParseInteger parses a base-10 integer literal of any size.
func ParseInteger(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

func (s *ToolboxService) Square(n decimal.Decimal) decimal.Decimal {
	return n.Mul(n)
}

func (s *ToolboxService) Add(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b)
}

func (s *ToolboxService) Subtract(a, b decimal.Decimal) decimal.Decimal {
	return a.Sub(b)
}

func (s *ToolboxService) Multiply(a, b decimal.Decimal) decimal.Decimal {
	return a.Mul(b)
}

// Divide returns a/b as a float64 (true division), correctly rounded from
// the exact rational quotient at any magnitude.
func (s *ToolboxService) Divide(a, b decimal.Decimal) (float64, error) {
	if b.IsZero() {
		return 0, ErrDivisionByZero
	}

	quotient, _ := new(big.Rat).Quo(a.Rat(), b.Rat()).Float64()
	if math.IsInf(quotient, 0) {
		return 0, ErrResultOutOfRange
	}

	return quotient, nil
}

// today returns the current calendar date in s.location, as midnight UTC so
// day arithmetic is unaffected by DST transitions.
func (s *ToolboxService) today() time.Time {
	year, month, day := s.clock.Now().In(s.location).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysUntilNewYear returns the number of days from today until January 1st
// of next year. On December 31st it is 1; on January 1st it is 365 or 366.
func (s *ToolboxService) DaysUntilNewYear() int {
	today := s.today()
	newYear := time.Date(today.Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	return int(newYear.Sub(today).Hours() / 24)
}

// CurrentDate returns today's date as YYYY-MM-DD.
func (s *ToolboxService) CurrentDate() string {
	return s.today().Format(DateLayout)
}

// FormatInteger renders an integer decimal as a JSON number literal.
func FormatInteger(d decimal.Decimal) string {
	return d.String()
}

// FormatFloat renders f as a JSON number literal that always reads as a float.
// Magnitudes in [1e-4, 1e16) use positional notation and keep a ".0" suffix
// when integral ("4.0"); others use exponent notation ("1e+16").
func FormatFloat(f float64) string {
	if abs := math.Abs(f); f != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
