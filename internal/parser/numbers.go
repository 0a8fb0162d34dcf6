package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidNumber indicates a number or range argument could not be parsed.
var ErrInvalidNumber = errors.New("invalid number")

// ParseNumbers expands tokens such as "7" and "1000-1200" into item numbers,
// keeping the order given. Ranges are inclusive.
func ParseNumbers(tokens []string) ([]int, error) {
	var out []int
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		numbers, err := parseToken(token)
		if err != nil {
			return nil, err
		}
		out = append(out, numbers...)
	}
	return out, nil
}

func parseToken(token string) ([]int, error) {
	if !strings.Contains(token, "-") {
		n, err := parsePositive(token)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid input %q", ErrInvalidNumber, token)
		}
		return []int{n}, nil
	}

	parts := strings.Split(token, "-")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: invalid input %q", ErrInvalidNumber, token)
	}
	start, err := parsePositive(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid input %q", ErrInvalidNumber, token)
	}
	end, err := parsePositive(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid input %q", ErrInvalidNumber, token)
	}
	if start > end {
		return nil, fmt.Errorf("%w: invalid range %q", ErrInvalidNumber, token)
	}

	out := make([]int, 0, end-start+1)
	for n := start; n <= end; n++ {
		out = append(out, n)
	}
	return out, nil
}

func parsePositive(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("number %d must be positive", n)
	}
	return n, nil
}
