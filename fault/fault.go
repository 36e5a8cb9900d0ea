// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type AccessError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised           = ProcessError("already initialised")
	CannotDecodeAddress          = InvalidError("cannot decode address")
	CannotMergeWithSelf          = InvalidError("cannot merge a resource with itself")
	CannotDecodeCapability       = InvalidError("cannot decode capability")
	CannotDecodeResourceId       = InvalidError("cannot decode resource id")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ChecksumMismatch             = InvalidError("checksum mismatch")
	EventLogDrained              = ProcessError("event log already drained")
	InsufficientBalance          = InvalidError("insufficient balance")
	InvalidAmount                = InvalidError("amount out of range")
	InvalidCount                 = InvalidError("count out of range")
	InvalidIpAddress             = InvalidError("invalid ip address")
	InvalidPayloadLength         = InvalidError("payload length is invalid")
	InvalidTagName               = InvalidError("tag name is invalid")
	InvalidValue                 = InvalidError("value violates type invariant")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	MissingAdministrator         = InvalidError("administrator address is not set")
	MissingParameters            = InvalidError("missing parameters")
	NotAvailableInReadOnlyMode   = ProcessError("not available in read only mode")
	NotAvailableWhenStopped      = ProcessError("not available when stopped")
	NotFungible                  = InvalidError("resource type is not fungible")
	NotInitialised               = ProcessError("not initialised")
	NotOwner                     = AccessError("not the current owner")
	RateLimiting                 = ProcessError("rate limiting")
	ResourceNotFound             = NotFoundError("resource not found")
	TagAlreadyRegistered         = ExistsError("tag already registered")
	TagNotFound                  = NotFoundError("tag not found")
	TransactionIsNil             = InvalidError("transaction context is nil")
	TypeMismatch                 = InvalidError("resource type tags differ")
	Unauthorized                 = AccessError("capability does not authorize caller")
	WrongNetworkForPrivateKey    = InvalidError("wrong network for private key")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AccessError) Error() string   { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrAccess(e error) bool   { _, ok := e.(AccessError); return ok }
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
