package domain

// JSONObject is a decoded broker response body. Broker payloads are dynamic
// documents; accessors report absence or a wrong shape instead of panicking,
// so callers can surface a malformed-response error.
type JSONObject map[string]interface{}

// StringField returns the string under key, or false when the key is absent
// or holds a non-string value.
func (o JSONObject) StringField(key string) (string, bool) {
	value, ok := o[key].(string)
	return value, ok
}

// ObjectField returns the nested object under key, or false when the key is
// absent or holds a non-object value.
func (o JSONObject) ObjectField(key string) (JSONObject, bool) {
	value, ok := o[key].(map[string]interface{})
	if !ok {
		return nil, false
	}
	return JSONObject(value), true
}

// ListField returns the list under key, or false when the key is absent or
// holds a non-list value.
func (o JSONObject) ListField(key string) ([]interface{}, bool) {
	value, ok := o[key].([]interface{})
	return value, ok
}
