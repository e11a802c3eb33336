// Package audit persists the device access trail: one Entry per operation
// that passes through a device proxy.
//
// Entries live in the device_access_log table created by the embedded
// migrations. List returns newest first with limit/offset paging.
package audit
