package sysbench

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Default token positions used by sysbench 1.0 for each field idiom.
const (
	DefaultPlainPos   = 1
	DefaultSecondsPos = 2
	DefaultRatioPos   = 2
	BracketedRatePos  = 3
)

var errMissingNumber = errors.New("no numeric value left after stripping")

func token(fields []string, line, name string, i int) (string, error) {
	if i < 0 || i >= len(fields) {
		return "", &FormatError{Field: name, Pos: i, Line: line,
			Err: fmt.Errorf("line has %d tokens", len(fields))}
	}
	return fields[i], nil
}

func parseNumber(s, line, name string, i int) (float64, error) {
	if s == "" {
		return 0, &FormatError{Field: name, Pos: i, Line: line, Err: errMissingNumber}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &FormatError{Field: name, Pos: i, Line: line, Err: err}
	}
	return v, nil
}

// PlainField reads token i of the next line as a number.
//
//	"min:                                    0.20"  ->  0.20
func PlainField(c *Cursor, name string, i int) (float64, error) {
	fields, line, err := c.Fields()
	if err != nil {
		return 0, err
	}
	tok, err := token(fields, line, name, i)
	if err != nil {
		return 0, err
	}
	return parseNumber(tok, line, name, i)
}

// SecondsField reads token i of the next line and drops its unit suffix.
//
//	"total time:                          10.0008s"  ->  10.0008
func SecondsField(c *Cursor, name string, i int) (float64, error) {
	fields, line, err := c.Fields()
	if err != nil {
		return 0, err
	}
	tok, err := token(fields, line, name, i)
	if err != nil {
		return 0, err
	}
	return parseNumber(tok[:len(tok)-1], line, name, i)
}

// RatioField reads an "avg/stddev" token and returns both halves.
//
//	"events (avg/stddev):           1000.0000/0.00"  ->  1000.0000, 0.00
func RatioField(c *Cursor, name string, i int) (float64, float64, error) {
	fields, line, err := c.Fields()
	if err != nil {
		return 0, 0, err
	}
	tok, err := token(fields, line, name, i)
	if err != nil {
		return 0, 0, err
	}
	parts := strings.Split(tok, "/")
	if len(parts) != 2 {
		return 0, 0, &FormatError{Field: name, Pos: i, Line: line,
			Err: fmt.Errorf("expected avg/stddev pair, got %q", tok)}
	}
	avg, err := parseNumber(parts[0], line, name, i)
	if err != nil {
		return 0, 0, err
	}
	stddev, err := parseNumber(parts[1], line, name, i)
	if err != nil {
		return 0, 0, err
	}
	return avg, stddev, nil
}

// BracketedRateField reads the parenthesised rate of a memory summary line.
//
//	"Total operations: 3145728 (311032.23 per second)"  ->  311032.23
func BracketedRateField(c *Cursor, name string) (float64, error) {
	fields, line, err := c.Fields()
	if err != nil {
		return 0, err
	}
	tok, err := token(fields, line, name, BracketedRatePos)
	if err != nil {
		return 0, err
	}
	return parseNumber(tok[1:], line, name, BracketedRatePos)
}
