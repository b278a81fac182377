package shared

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		WordID  int64 `json:"word_id"`
		Quality int   `json:"quality"`
	}

	tests := []struct {
		name        string
		body        string
		wantErr     error
		errContains string
		want        payload
	}{
		{name: "valid", body: `{"word_id": 7, "quality": 4}`, want: payload{WordID: 7, Quality: 4}},
		{name: "trailing_comma", body: `{"word_id": 7,}`, errContains: "invalid character"},
		{name: "empty", body: "", wantErr: ErrEmptyBody},
		{name: "two_values", body: `{"word_id": 1} {"word_id": 2}`, errContains: "single JSON value"},
		{name: "wrong_type", body: `{"word_id": "seven"}`, errContains: "cannot unmarshal"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(tc.body))

			var got payload
			err := DecodeJSON(req, &got)

			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.errContains != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

type errorReader struct{}

func (errorReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestDecodeJSONWithReadError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/test", errorReader{})

	var target struct{}
	err := DecodeJSON(req, &target)
	assert.ErrorContains(t, err, "unexpected EOF")
}

type selfValidating struct {
	Name string
}

func (v *selfValidating) Validate() error {
	if v.Name == "invalid" {
		return assert.AnError
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	type tagged struct {
		Points int    `validate:"gt=0"`
		Item   string `validate:"required"`
	}

	tests := []struct {
		name    string
		req     any
		wantErr bool
	}{
		{name: "self_validating_ok", req: &selfValidating{Name: "ok"}},
		{name: "self_validating_fails", req: &selfValidating{Name: "invalid"}, wantErr: true},
		{name: "tags_ok", req: &tagged{Points: 3, Item: "sticker"}},
		{name: "tags_fail", req: &tagged{Points: 0, Item: "sticker"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRequest(tc.req)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    int
		wantErr bool
	}{
		{name: "absent", url: "/deck", want: 10},
		{name: "present", url: "/deck?limit=25", want: 25},
		{name: "negative", url: "/deck?limit=-3", want: -3},
		{name: "not_a_number", url: "/deck?limit=ten", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := QueryInt(httptest.NewRequest(http.MethodGet, tc.url, nil), "limit", 10)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestQueryList(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/deck?tag=animals,food&tag=+colors+&tag=,", nil)
	assert.Equal(t, []string{"animals", "food", "colors"}, QueryList(req, "tag"))

	assert.Nil(t, QueryList(httptest.NewRequest(http.MethodGet, "/deck", nil), "tag"))
}
