package container

import "encoding/json"

// PayloadFunc transforms an outgoing request body.
type PayloadFunc func(payload any) any

// PreparePayload returns a function applying c's payload transform.
//
// A nil payload is returned unchanged and never reaches the transform, and
// without a configured transform every payload is returned unchanged.
func PreparePayload(c Container) func(payload any) any {
	return func(payload any) any {
		if payload == nil {
			return payload
		}
		fn := c.PayloadAs()
		if fn == nil {
			return payload
		}
		return fn(payload)
	}
}

// JSONPayload marshals the payload into a JSON string. Values that cannot be
// marshalled are returned unchanged so the transport reports the failure.
func JSONPayload(payload any) any {
	data, err := json.Marshal(payload)
	if err != nil {
		return payload
	}
	return string(data)
}
