// Package ctxutil carries request-scoped values: the trace id, the verified
// caller identity and the client address.
//
//	ctx, traceID := ctxutil.EnsureTraceID(ctx)
//	ctx = ctxutil.SetIdentity(ctx, id)
//	email := ctxutil.GetEmail(ctx)
//
// Values set through SetValue are mirrored onto an embedded *gin.Context so
// gin handlers can read them with c.Get.
package ctxutil
