package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation     Code = "VALIDATION_ERROR"
	CodeUnauthorized   Code = "UNAUTHORIZED"
	CodeForbidden      Code = "FORBIDDEN"
	CodeNotFound       Code = "NOT_FOUND"
	CodeDuplicateCode  Code = "DUPLICATE_CODE"
	CodeOrderIDTaken   Code = "ORDER_ID_DUPLICATE"
	CodeOrderPaid      Code = "ORDER_ALREADY_PAID"
	CodeInternal       Code = "INTERNAL_SERVER_ERROR"
	CodeConfiguration  Code = "CONFIGURATION_ERROR"
	CodeAmountMismatch Code = "AMOUNT_MISMATCH"
	CodeSigMismatch    Code = "SIGNATURE_MISMATCH"
	CodeNotCaptured    Code = "PAYMENT_NOT_CAPTURED"
	CodeGateway        Code = "PAYMENT_GATEWAY_ERROR"
	CodeRateLimit      Code = "RATE_LIMITED"
	CodeIdempotency    Code = "IDEMPOTENCY_CONFLICT"

	CodeCouponNotFound    Code = "COUPON_NOT_FOUND"
	CodeCouponInvalidDate Code = "COUPON_INVALID_DATE"
	CodeCouponExpired     Code = "COUPON_EXPIRED"
	CodeCouponUsageLimit  Code = "COUPON_USAGE_LIMIT_REACHED"
	CodeCouponMinAmount   Code = "COUPON_MIN_AMOUNT_NOT_MET"
	CodeCouponUserLimit   Code = "COUPON_USER_LIMIT_REACHED"
	CodeCouponBadCategory Code = "COUPON_CATEGORY_NOT_APPLICABLE"
	CodeCouponBadDuration Code = "COUPON_DURATION_NOT_APPLICABLE"
)

type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		HTTPStatus:     http.StatusBadRequest,
		PublicMessage:  "validation failed",
		DetailsAllowed: true,
	},
	CodeUnauthorized: {
		HTTPStatus:    http.StatusUnauthorized,
		PublicMessage: "authentication required",
	},
	CodeForbidden: {
		HTTPStatus:    http.StatusForbidden,
		PublicMessage: "access denied",
	},
	CodeNotFound: {
		HTTPStatus:    http.StatusNotFound,
		PublicMessage: "resource not found",
	},
	CodeDuplicateCode: {
		HTTPStatus:     http.StatusConflict,
		PublicMessage:  "code already in use",
		DetailsAllowed: true,
	},
	CodeOrderIDTaken: {
		HTTPStatus:     http.StatusConflict,
		PublicMessage:  "order id already in use",
		DetailsAllowed: true,
	},
	CodeOrderPaid: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "order is already paid",
	},
	CodeAmountMismatch: {
		HTTPStatus:     http.StatusBadRequest,
		PublicMessage:  "payment amount does not match the amount due",
		DetailsAllowed: true,
	},
	CodeSigMismatch: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "payment signature verification failed",
	},
	CodeNotCaptured: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "payment is not captured",
	},
	CodeGateway: {
		HTTPStatus:     http.StatusBadGateway,
		Retryable:      true,
		PublicMessage:  "payment gateway error",
		DetailsAllowed: true,
	},
	CodeRateLimit: {
		HTTPStatus:    http.StatusTooManyRequests,
		Retryable:     true,
		PublicMessage: "rate limit exceeded",
	},
	CodeIdempotency: {
		HTTPStatus:    http.StatusConflict,
		PublicMessage: "idempotency key reused with a different request",
	},
	CodeConfiguration: {
		HTTPStatus:    http.StatusInternalServerError,
		PublicMessage: "service is not configured for this operation",
	},
	CodeInternal: {
		HTTPStatus:    http.StatusInternalServerError,
		Retryable:     true,
		PublicMessage: "internal server error",
	},

	CodeCouponNotFound: {
		HTTPStatus:    http.StatusNotFound,
		PublicMessage: "coupon not found",
	},
	CodeCouponInvalidDate: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "coupon is not valid yet",
	},
	CodeCouponExpired: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "coupon has expired",
	},
	CodeCouponUsageLimit: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "coupon usage limit reached",
	},
	CodeCouponMinAmount: {
		HTTPStatus:     http.StatusBadRequest,
		PublicMessage:  "order total does not meet the coupon minimum",
		DetailsAllowed: true,
	},
	CodeCouponUserLimit: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "coupon usage limit for this user reached",
	},
	CodeCouponBadCategory: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "coupon is not applicable to these categories",
	},
	CodeCouponBadDuration: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "coupon is not applicable to these durations",
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

// IsCouponRejection reports whether the code belongs to the coupon evaluation
// taxonomy. Rejections are business outcomes, not infrastructure failures.
func IsCouponRejection(code Code) bool {
	switch code {
	case CodeCouponNotFound, CodeCouponInvalidDate, CodeCouponExpired,
		CodeCouponUsageLimit, CodeCouponMinAmount, CodeCouponUserLimit,
		CodeCouponBadCategory, CodeCouponBadDuration:
		return true
	}
	return false
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
