package matchers

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/onsi/gomega"
)

// MarshalToJSON matches when the actual value marshals to JSON equivalent to
// expectedJSON, ignoring key order.
func MarshalToJSON(expectedJSON string) gomega.OmegaMatcher {
	return &marshalToJSONMatcher{
		expectedJSON: expectedJSON,
	}
}

type marshalToJSONMatcher struct {
	expectedJSON string
}

func (m *marshalToJSONMatcher) Match(actual interface{}) (bool, error) {
	raw, err := json.Marshal(actual)
	if err != nil {
		return false, err
	}

	var actualValue, expectedValue interface{}
	if err := json.Unmarshal(raw, &actualValue); err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(m.expectedJSON), &expectedValue); err != nil {
		return false, fmt.Errorf("expected JSON is not valid: %s", err)
	}

	return reflect.DeepEqual(actualValue, expectedValue), nil
}

func (m *marshalToJSONMatcher) FailureMessage(actual interface{}) string {
	return fmt.Sprintf("expected %v to marshal to %s", actual, m.expectedJSON)
}

func (m *marshalToJSONMatcher) NegatedFailureMessage(actual interface{}) string {
	return fmt.Sprintf("expected %v not to marshal to %s", actual, m.expectedJSON)
}
