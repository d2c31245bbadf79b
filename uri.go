package cryptoconditions

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	uriScheme  = "ni:///"
	uriHashAlg = "sha-256"

	paramType     = "fpt"
	paramCost     = "cost"
	paramSubtypes = "subtypes"
)

// URI renders the condition as a named-information URI:
//
//	ni:///sha-256;<fingerprint>?fpt=<type>&cost=<cost>[&subtypes=<types>]
//
// The fingerprint is unpadded base64url and subtypes are listed in
// alphabetical order.
func (c *Condition) URI() string {
	var sb strings.Builder
	sb.WriteString(uriScheme)
	sb.WriteString(uriHashAlg)
	sb.WriteByte(';')
	sb.WriteString(base64.RawURLEncoding.EncodeToString(c.fingerprint[:]))
	sb.WriteString("?" + paramType + "=")
	sb.WriteString(c.typ.String())
	sb.WriteString("&" + paramCost + "=")
	sb.WriteString(strconv.FormatUint(c.cost, 10))
	if c.typ.IsCompound() && c.subtypes != 0 {
		sb.WriteString("&" + paramSubtypes + "=")
		sb.WriteString(c.subtypes.String())
	}
	return sb.String()
}

// ParseURI parses the named-information form produced by URI. Query
// parameters may appear in any order.
func ParseURI(uri string) (*Condition, error) {
	if len(uri) < len(uriScheme) || !strings.EqualFold(uri[:len(uriScheme)], uriScheme) {
		return nil, fmt.Errorf("%w: missing %q scheme", ErrInvalidURI, uriScheme)
	}
	rest := uri[len(uriScheme):]
	alg, rest, ok := strings.Cut(rest, ";")
	if !ok || !strings.EqualFold(alg, uriHashAlg) {
		return nil, fmt.Errorf("%w: unsupported hash %q", ErrInvalidURI, alg)
	}
	fp64, query, ok := strings.Cut(rest, "?")
	if !ok {
		return nil, fmt.Errorf("%w: missing query", ErrInvalidURI)
	}
	fingerprint, err := base64.RawURLEncoding.Strict().DecodeString(fp64)
	if err != nil {
		return nil, fmt.Errorf("%w: fingerprint: %v", ErrInvalidURI, err)
	}
	params, err := url.ParseQuery(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	get := func(key string, required bool) (string, error) {
		vs := params[key]
		switch {
		case len(vs) > 1:
			return "", fmt.Errorf("%w: repeated %s", ErrInvalidURI, key)
		case len(vs) == 0 && required:
			return "", fmt.Errorf("%w: missing %s", ErrInvalidURI, key)
		case len(vs) == 0:
			return "", nil
		}
		return vs[0], nil
	}

	name, err := get(paramType, true)
	if err != nil {
		return nil, err
	}
	t, err := ParseConditionType(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURI, err)
	}
	costStr, err := get(paramCost, true)
	if err != nil {
		return nil, err
	}
	cost, err := strconv.ParseUint(costStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: cost %q", ErrInvalidURI, costStr)
	}
	list, err := get(paramSubtypes, false)
	if err != nil {
		return nil, err
	}
	subtypes, err := parseTypeNames(list)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURI, err)
	}
	return NewCondition(t, fingerprint, cost, subtypes)
}
