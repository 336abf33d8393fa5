package fetch

import "encoding/json"

// Decode unmarshals a fetched body into T. A schema mismatch is reported as a
// parse failure so callers treat it like any other unusable response.
func Decode[T any](url string, body []byte) (T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		var zero T
		return zero, &Failure{Kind: KindParse, URL: url, Message: err.Error(), Err: err}
	}
	return v, nil
}
