package httpapi_test

import (
	"testing"

	"emailfinder/pkg/backend/httpapi"
	"emailfinder/pkg/domain"
	"emailfinder/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func TestParseGenerated_shapes(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		emails []string
	}{
		{name: "object with scored emails", body: `{"success":true,"emails":[{"email":"a@x.com","confidence":80}]}`, emails: []string{"a@x.com"}},
		{name: "object with plain emails", body: `{"emails":["a@x.com","b@x.com"]}`, emails: []string{"a@x.com", "b@x.com"}},
		{name: "bare scored array", body: `[{"email":"a@x.com","confidence":10},{"email":"b@x.com","score":20}]`, emails: []string{"a@x.com", "b@x.com"}},
		{name: "bare string array", body: `["a@x.com"," b@x.com "]`, emails: []string{"a@x.com", "b@x.com"}},
		{name: "nested under data", body: `{"success":true,"data":["a@x.com"]}`, emails: []string{"a@x.com"}},
		{name: "unknown members skipped", body: `{"meta":{"took":3},"emails":[null,1,"a@x.com"]}`, emails: []string{"a@x.com"}},
		{name: "empty object", body: `{}`, emails: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := httpapi.ParseGenerated([]byte(tt.body))
			require.NoError(t, err)

			var got []string
			for _, e := range res.Emails {
				got = append(got, e.Email)
			}
			require.Equal(t, tt.emails, got)
		})
	}
}

func TestParseGenerated_domainResults(t *testing.T) {
	body := `{
		"globalEmails": [{"email":"info@x.com","confidence":60}],
		"domainResults": [
			{"domain":"x.com","status":"completed","emails":[{"email":"a@x.com","confidence":90},{"email":"info@x.com","confidence":60}]},
			{"domain":"y.com","status":"error","error":"timeout","emails":[]}
		]
	}`

	res, err := httpapi.ParseGenerated([]byte(body))
	require.NoError(t, err)
	require.Equal(t, []domain.EmailWithConfidence{
		{Email: "info@x.com", Confidence: 60},
		{Email: "a@x.com", Confidence: 90},
	}, res.Emails)

	require.Len(t, res.DomainResults, 2)
	require.Equal(t, "x.com", res.DomainResults[0].Domain)
	require.Equal(t, domain.DomainCompleted, res.DomainResults[0].Status)
	require.Len(t, res.DomainResults[0].Emails, 2)
	require.Equal(t, domain.DomainError, res.DomainResults[1].Status)
	require.Equal(t, "timeout", res.DomainResults[1].Error)
	require.Empty(t, res.DomainResults[1].Emails)
}

func TestParseGenerated_bareDomainArray(t *testing.T) {
	res, err := httpapi.ParseGenerated([]byte(`[{"domain":"x.com","emails":["a@x.com"]}]`))
	require.NoError(t, err)
	require.Len(t, res.DomainResults, 1)
	require.Equal(t, domain.DomainCompleted, res.DomainResults[0].Status)
	require.Equal(t, "a@x.com", res.Emails[0].Email)
}

func TestParseGenerated_failures(t *testing.T) {
	_, err := httpapi.ParseGenerated([]byte(`{"success":false,"message":"quota exceeded"}`))
	require.ErrorIs(t, err, serrors.ErrBadRequest)
	require.EqualError(t, err, "quota exceeded")

	_, err = httpapi.ParseGenerated([]byte(`"nope"`))
	require.ErrorIs(t, err, serrors.ErrInternal)

	_, err = httpapi.ParseGenerated([]byte(`{"emails":[`))
	require.Error(t, err)
}
