package directory

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/empdir/portal/internal/core/domain"
)

// classifyFailure turns a non-2xx response into a RequestError.
//
// A JSON object whose values are all strings (and has no "message" key) is a
// field error map. Spring error envelopes carry the same map under
// "details". Anything else is reported as a flat message.
func classifyFailure(status int, body []byte) *domain.RequestError {
	re := &domain.RequestError{
		Kind:    domain.KindServer,
		Status:  status,
		Message: fmt.Sprintf("Request failed with status code %d", status),
	}
	if status == http.StatusForbidden {
		re.Kind = domain.KindAuthorization
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil || len(obj) == 0 {
		return re
	}

	if msg := stringValue(obj["message"]); msg != "" {
		re.Message = msg
		return re
	}

	if re.Kind != domain.KindAuthorization {
		if fields, ok := fieldMap(obj); ok {
			re.Kind = domain.KindServerValidation
			re.FieldErrors = fields
			return re
		}
		var details map[string]json.RawMessage
		if err := json.Unmarshal(obj["details"], &details); err == nil {
			if fields, ok := fieldMap(details); ok {
				re.Kind = domain.KindServerValidation
				re.FieldErrors = fields
				return re
			}
		}
	}

	if msg := stringValue(obj["details"]); msg != "" {
		re.Message = msg
	}
	return re
}

func fieldMap(obj map[string]json.RawMessage) (domain.FormErrors, bool) {
	if len(obj) == 0 {
		return nil, false
	}
	if _, ok := obj["message"]; ok {
		return nil, false
	}
	fields := make(domain.FormErrors, len(obj))
	for k, raw := range obj {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, false
		}
		fields[k] = s
	}
	return fields, true
}

func stringValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
