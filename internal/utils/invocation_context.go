package utils

import "context"

type invocationContextKey struct{}

// InvocationDetails describes how the running command was configured.
type InvocationDetails struct {
	ConfigurationFilePath string
	ApplicationVersion    string
}

// WithInvocationDetails attaches details to parentContext.
func WithInvocationDetails(parentContext context.Context, details InvocationDetails) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, invocationContextKey{}, details)
}

// InvocationDetailsFromContext returns the attached details, if any.
func InvocationDetailsFromContext(executionContext context.Context) (InvocationDetails, bool) {
	if executionContext == nil {
		return InvocationDetails{}, false
	}
	details, available := executionContext.Value(invocationContextKey{}).(InvocationDetails)
	return details, available
}
