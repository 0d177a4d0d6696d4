// Package response writes the JSON envelope shared by every HTTP route.
//
// Successful calls return {"success": true, ...fields}. Failures return
// {"success": false, "error": {"code", "message"}} where code is the errs.Kind
// of the failure. Not found maps to 404, invalid input to 400 and everything
// else to 500.
package response
