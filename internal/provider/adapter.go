package provider

import "context"

// FuncAdapter turns a client call into an Adapter. Provider packages build
// one per request type they serve.
type FuncAdapter struct {
    ID    ID
    Type  RequestType
    Shape Shape
    // HasCredential is nil for providers that work without a key.
    HasCredential func() bool
    Call          func(ctx context.Context, req Request) ([]byte, error)
}

func (a *FuncAdapter) Provider() ID             { return a.ID }
func (a *FuncAdapter) RequestType() RequestType { return a.Type }

func (a *FuncAdapter) Credentialed() bool {
    if a.HasCredential == nil { return true }
    return a.HasCredential()
}

func (a *FuncAdapter) Fetch(ctx context.Context, req Request) Outcome {
    body, err := a.Call(ctx, req)
    if err != nil { return Classify(err) }
    return Success(Payload{Provider: a.ID, Shape: a.Shape, Body: body})
}
