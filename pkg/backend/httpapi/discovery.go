package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"time"

	"emailfinder/pkg/backend"
	"emailfinder/pkg/domain"
	"emailfinder/pkg/serrors"
)

// LookupCompany runs the AI-assisted research for domainName. The payload is
// kept as indented JSON so it can be forwarded to generation untouched.
func (c *Client) LookupCompany(ctx context.Context, token, domainName string) (domain.CompanyData, error) {
	body := struct {
		Domain string `json:"domain"`
	}{Domain: domainName}

	b, _, err := c.send(ctx, call{
		endpoint: "perplexity", method: http.MethodPost, path: "/api/perplexity", token: token, body: body,
	})
	if err != nil {
		return domain.CompanyData{}, err
	}

	var rs struct {
		Success   *bool           `json:"success"`
		Message   string          `json:"message"`
		Data      json.RawMessage `json:"data"`
		Domain    string          `json:"domain"`
		Timestamp string          `json:"timestamp"`
	}
	if err := json.Unmarshal(b, &rs); err != nil {
		return domain.CompanyData{}, fmt.Errorf("could not decode response: %w", err)
	}
	if rs.Success != nil && !*rs.Success {
		return domain.CompanyData{}, serrors.With(serrors.ErrBadRequest, "company lookup failed: %s", rs.Message)
	}

	var out bytes.Buffer
	if len(rs.Data) > 0 {
		if err := json.Indent(&out, rs.Data, "", "  "); err != nil {
			return domain.CompanyData{}, fmt.Errorf("could not format company data: %w", err)
		}
	}

	cd := domain.CompanyData{Output: out.String(), Domain: rs.Domain, Timestamp: time.Now().UTC()}
	if cd.Domain == "" {
		cd.Domain = domainName
	}
	if ts, err := time.Parse(time.RFC3339Nano, rs.Timestamp); err == nil {
		cd.Timestamp = ts
	}

	return cd, nil
}

func boolField(v bool) string {
	return strconv.FormatBool(v)
}

// permuteForm encodes req as the multipart form the legacy endpoint expects.
func permuteForm(req backend.PermuteRequest) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	f := req.Form

	fields := [][2]string{
		{"firstName", f.FirstName},
		{"lastName", f.LastName},
		{"middleName", f.MiddleName},
		{"domain", f.Domain},
		{"mode", f.Mode},
		{"useNickName", boolField(f.UseNickName)},
		{"useCustomNames", boolField(f.UseCustomNames)},
		{"useAdvancedEmails", boolField(f.UseAdvancedEmails)},
		{"usePersonalInfo", "false"},
	}
	if f.UseNickName {
		fields = append(fields, [2]string{"nickName", f.NickName})
	}
	if f.UseCustomNames {
		names, err := json.Marshal(f.SelectedCustomNames)
		if err != nil {
			return nil, "", fmt.Errorf("could not marshal custom names: %w", err)
		}
		fields = append(fields, [2]string{"selectedCustomNames", string(names)})
	}
	if req.Company != nil {
		company, err := json.Marshal(req.Company)
		if err != nil {
			return nil, "", fmt.Errorf("could not marshal company data: %w", err)
		}
		fields = append(fields, [2]string{"webhookResponse", string(company)})
	}

	for _, kv := range fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", fmt.Errorf("could not write field %s: %w", kv[0], err)
		}
	}

	if file := f.DomainFile; file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="domainFile"; filename=%q`, file.Name))
		h.Set("Content-Type", "text/plain")
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("could not create file part: %w", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, "", fmt.Errorf("could not write file part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("could not close multipart writer: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

// Permute posts the whole form, including any domain file, to the legacy
// generation endpoint.
func (c *Client) Permute(ctx context.Context, token string, req backend.PermuteRequest) (backend.PermuteResult, error) {
	body, contentType, err := permuteForm(req)
	if err != nil {
		return backend.PermuteResult{}, err
	}

	b, _, err := c.send(ctx, call{
		endpoint: "permute", method: http.MethodPost, path: "/permute", token: token, body: body, contentType: contentType,
	})
	if err != nil {
		return backend.PermuteResult{}, err
	}

	return ParseGenerated(b)
}

// StartDiscovery opens a discovery session over req.Domains.
func (c *Client) StartDiscovery(ctx context.Context, token string, req backend.StartDiscoveryRequest) (domain.DiscoverySession, error) {
	var s domain.DiscoverySession
	err := c.do(ctx, call{
		endpoint: "discovery.start", method: http.MethodPost, path: "/api/email-discovery/start", token: token, body: req,
	}, &s)
	if err != nil {
		return domain.DiscoverySession{}, err
	}
	if s.ID == "" {
		return domain.DiscoverySession{}, serrors.With(serrors.ErrInternal, "discovery.start: response did not include a session id")
	}

	return s, nil
}

// ProcessDomain runs generation for the domain at index in session sessionID.
func (c *Client) ProcessDomain(ctx context.Context, token, sessionID string, index int) (backend.ProcessedDomain, error) {
	var p backend.ProcessedDomain
	path := fmt.Sprintf("/api/email-discovery/session/%s/domain/%d/process", url.PathEscape(sessionID), index)
	if err := c.do(ctx, call{endpoint: "discovery.process", method: http.MethodPost, path: path, token: token}, &p); err != nil {
		return backend.ProcessedDomain{}, err
	}

	return p, nil
}

// SessionEmails returns every email generated so far in session sessionID.
func (c *Client) SessionEmails(ctx context.Context, token, sessionID string) (backend.PermuteResult, error) {
	b, _, err := c.send(ctx, call{
		endpoint: "discovery.emails", method: http.MethodGet,
		path:  "/api/email-discovery/session/" + url.PathEscape(sessionID) + "/emails",
		token: token,
	})
	if err != nil {
		return backend.PermuteResult{}, err
	}

	return ParseGenerated(b)
}

// SmartVerify verifies the highest-confidence candidates.
func (c *Client) SmartVerify(ctx context.Context, token string, req backend.SmartVerifyRequest) (backend.VerifyResult, error) {
	var rs backend.VerifyResult
	err := c.do(ctx, call{endpoint: "verify.smart", method: http.MethodPost, path: "/api/smart-verify", token: token, body: req}, &rs)

	return rs, err
}

// BulkVerify verifies every address in emails.
func (c *Client) BulkVerify(ctx context.Context, token string, emails []string) (backend.VerifyResult, error) {
	body := struct {
		Emails []string `json:"emails"`
	}{Emails: emails}

	var rs backend.VerifyResult
	err := c.do(ctx, call{
		endpoint: "verify.bulk", method: http.MethodPost, path: "/api/email-verification/bulk-verify", token: token, body: body,
	}, &rs)

	return rs, err
}
