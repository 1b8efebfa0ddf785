package httpapi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"emailfinder/pkg/backend"
	"emailfinder/pkg/domain"
	"emailfinder/pkg/serrors"

	"github.com/go-faster/jx"
)

// ParseGenerated normalizes the response of the generation endpoints, which
// have answered in several shapes over time:
//
//	{"success": true, "emails": [{"email": "...", "confidence": 80}]}
//	{"emails": ["a@x.com", "b@x.com"]}
//	{"globalEmails": [...], "domainResults": [{"domain": "x.com", "emails": [...], "status": "completed"}]}
//	[{"email": "...", "confidence": 80}]
//	["a@x.com"]
//	[{"domain": "x.com", "emails": [...], "status": "completed"}]
//
// Any of the object forms may also be nested under "data". Emails are
// deduplicated case-insensitively, keeping the first occurrence.
func ParseGenerated(b []byte) (backend.PermuteResult, error) {
	p := generatedParser{seen: make(map[string]struct{})}
	if err := p.value(jx.DecodeBytes(b)); err != nil {
		return backend.PermuteResult{}, err
	}

	return backend.PermuteResult{Emails: p.emails, DomainResults: p.domains}, nil
}

type generatedParser struct {
	emails  []domain.EmailWithConfidence
	domains []domain.DomainResult
	seen    map[string]struct{}
}

func (p *generatedParser) add(e domain.EmailWithConfidence) {
	key := strings.ToLower(strings.TrimSpace(e.Email))
	if key == "" {
		return
	}
	if _, ok := p.seen[key]; ok {
		return
	}
	p.seen[key] = struct{}{}
	p.emails = append(p.emails, e)
}

func (p *generatedParser) value(d *jx.Decoder) error {
	switch d.Next() {
	case jx.Array:
		return p.list(d)
	case jx.Object:
		return p.object(d)
	default:
		return serrors.With(serrors.ErrInternal, "unexpected generation response: %v", d.Next())
	}
}

func (p *generatedParser) object(d *jx.Decoder) error {
	var (
		success = true
		message string
	)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "success":
			if d.Next() != jx.Bool {
				return d.Skip()
			}
			v, err := d.Bool()
			success = v

			return err
		case "message", "error":
			if d.Next() != jx.String {
				return d.Skip()
			}
			v, err := d.Str()
			if message == "" {
				message = v
			}

			return err
		case "emails", "globalEmails", "domainResults", "results":
			if d.Next() != jx.Array {
				return d.Skip()
			}

			return p.list(d)
		case "data":
			if t := d.Next(); t != jx.Array && t != jx.Object {
				return d.Skip()
			}

			return p.value(d)
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return fmt.Errorf("could not decode generation response: %w", err)
	}
	if !success {
		if message == "" {
			message = "generation failed"
		}

		return serrors.With(serrors.ErrBadRequest, "%s", message)
	}

	return nil
}

func (p *generatedParser) list(d *jx.Decoder) error {
	return d.Arr(func(d *jx.Decoder) error {
		switch d.Next() {
		case jx.String:
			s, err := d.Str()
			if err != nil {
				return err
			}
			p.add(domain.EmailWithConfidence{Email: strings.TrimSpace(s)})

			return nil
		case jx.Object:
			return p.item(d)
		default:
			return d.Skip()
		}
	})
}

// item decodes either an email entry or a per-domain result entry.
func (p *generatedParser) item(d *jx.Decoder) error {
	var (
		email     domain.EmailWithConfidence
		result    domain.DomainResult
		isDomain  bool
		subParser = generatedParser{seen: make(map[string]struct{})}
	)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "email":
			s, err := str(d)
			email.Email = strings.TrimSpace(s)

			return err
		case "confidence", "score":
			f, err := number(d)
			email.Confidence = f

			return err
		case "domain":
			s, err := str(d)
			result.Domain = s

			return err
		case "status":
			s, err := str(d)
			result.Status = domain.DomainStatus(s)

			return err
		case "error":
			s, err := str(d)
			result.Error = s

			return err
		case "emails":
			if d.Next() != jx.Array {
				return d.Skip()
			}
			isDomain = true

			return subParser.list(d)
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return err
	}

	if isDomain || (email.Email == "" && result.Domain != "") {
		result.Emails = subParser.emails
		if result.Emails == nil {
			result.Emails = []domain.EmailWithConfidence{}
		}
		if result.Status == "" {
			result.Status = domain.DomainCompleted
		}
		result.Timestamp = time.Now()
		p.domains = append(p.domains, result)
		for _, e := range subParser.emails {
			p.add(e)
		}

		return nil
	}

	p.add(email)

	return nil
}

func str(d *jx.Decoder) (string, error) {
	if d.Next() != jx.String {
		return "", d.Skip()
	}

	return d.Str()
}

// number accepts JSON numbers and numeric strings.
func number(d *jx.Decoder) (float64, error) {
	switch d.Next() {
	case jx.Number:
		return d.Float64()
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
		if err != nil {
			return 0, nil //nolint: nilerr
		}

		return f, nil
	default:
		return 0, d.Skip()
	}
}
