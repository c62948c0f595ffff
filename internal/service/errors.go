package service

import "errors"

var (
	ErrCartNotFound  = errors.New("cart not found")
	ErrUnknownCoupon = errors.New("coupon code is not recognized")
	ErrNoCoupon      = errors.New("no coupon is applied")
	ErrEmptyCart     = errors.New("cart has no items")
)
