// Package gateway holds one adapter per payment provider. Each adapter builds
// the provider-specific request, authenticates it, submits it, and maps the
// response into canonical types the checkout orchestration consumes.
package gateway

// VerifyStatus is the canonical outcome of a synchronous verify call.
type VerifyStatus string

const (
	VerifySuccess VerifyStatus = "success"
	VerifyFailed  VerifyStatus = "failed"
	VerifyPending VerifyStatus = "pending"
)
