package notifications

import (
	"errors"
	"fmt"
	"time"
)

// Виды уведомлений (метка метрики)
const (
	KindCustomer = "customer"
	KindAdmin    = "admin"
)

// DefaultTimeout ограничение на одну отправку, если не задано в конфиге
const DefaultTimeout = 10 * time.Second

// Options настройки уведомлений
type Options struct {
	AdminEmail string
	Timeout    time.Duration
}

// Report результат двух независимых отправок
type Report struct {
	CustomerErr error
	AdminErr    error
}

// Delivered true, если оба письма отправлены
func (r Report) Delivered() bool {
	return r.CustomerErr == nil && r.AdminErr == nil
}

// Err объединенная ошибка отправок или nil
func (r Report) Err() error {
	if r.Delivered() {
		return nil
	}

	var errs []error
	if r.CustomerErr != nil {
		errs = append(errs, fmt.Errorf("customer: %w", r.CustomerErr))
	}
	if r.AdminErr != nil {
		errs = append(errs, fmt.Errorf("admin: %w", r.AdminErr))
	}
	return errors.Join(errs...)
}
