// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package descriptor

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseTemplate parses a template expression: pk(KEY), multi(K,KEY,...) or
// sortedmulti(K,KEY,...).
func ParseTemplate(s string) (Template, error) {
	if strings.IndexFunc(s, unicode.IsSpace) != -1 {
		return nil, fmt.Errorf("%w: whitespace in %q", ErrTemplateParse, s)
	}

	name, args, err := splitCall(s)
	if err != nil {
		return nil, err
	}

	switch name {
	case "pk":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: pk takes one key, got %d",
				ErrTemplateParse, len(args))
		}
		tmpl, err := NewSingleSig(args[0])
		if err != nil {
			return nil, err
		}
		return tmpl, nil

	case "multi", "sortedmulti":
		if len(args) < 2 {
			return nil, fmt.Errorf("%w: %s needs a threshold and "+
				"at least one key", ErrTemplateParse, name)
		}
		threshold, err := parseCanonicalUint(args[0])
		if err != nil {
			return nil, err
		}
		if threshold > MaxMultiSigKeys {
			return nil, fmt.Errorf("%w: threshold %d above %d",
				ErrTemplateParse, threshold, MaxMultiSigKeys)
		}
		tmpl, err := NewMultiSig(
			int(threshold), name == "sortedmulti", args[1:]...,
		)
		if err != nil {
			return nil, err
		}
		return tmpl, nil

	default:
		return nil, fmt.Errorf("%w: unknown template %q",
			ErrTemplateParse, name)
	}
}

// splitCall splits "name(a,b,...)" into its name and top level arguments.
// Nested calls are not part of the grammar and are rejected.
func splitCall(s string) (string, []string, error) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", nil, fmt.Errorf("%w: expected name(...), got %q",
			ErrTemplateParse, s)
	}

	var (
		args  []string
		depth int
		start = open + 1
	)
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
			if depth > 1 {
				return "", nil, fmt.Errorf("%w: nested expression "+
					"at offset %d", ErrTemplateParse, i)
			}

		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return "", nil, fmt.Errorf("%w: trailing data "+
					"after offset %d", ErrTemplateParse, i)
			}
			if depth == 0 {
				args = append(args, s[start:i])
			}

		case ',':
			args = append(args, s[start:i])
			start = i + 1
		}
	}

	for _, arg := range args {
		if arg == "" {
			return "", nil, fmt.Errorf("%w: empty argument in %q",
				ErrTemplateParse, s)
		}
	}

	return s[:open], args, nil
}

// parseCanonicalUint parses a decimal number written without sign or
// leading zeros, so every number has exactly one spelling.
func parseCanonicalUint(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || strconv.FormatUint(n, 10) != s {
		return 0, fmt.Errorf("%w: invalid number %q", ErrTemplateParse, s)
	}
	return n, nil
}
