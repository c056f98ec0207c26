package domain

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// OptionTarget чьи резервации проверяются для опций раннего заезда и позднего выезда
type OptionTarget string

const (
	OptionTargetPairedDay OptionTarget = "paired_day" // парная дневная категория того же сюита
	OptionTargetSelf      OptionTarget = "self"       // сама ночная категория
	OptionTargetBoth      OptionTarget = "both"       // обе категории
)

// IsValid возвращает true для известных целей
func (t OptionTarget) IsValid() bool {
	return t == OptionTargetPairedDay || t == OptionTargetSelf || t == OptionTargetBoth
}

// OptionWindow окно опции по настенным часам
type OptionWindow struct {
	From types.TimeString
	To   types.TimeString
}

// Validate проверяет формат границ и что окно не пустое
func (w OptionWindow) Validate() error {
	if err := w.From.Validate(); err != nil {
		return err
	}
	if err := w.To.Validate(); err != nil {
		return err
	}
	if !w.From.IsBefore(w.To) {
		return fmt.Errorf("option window %s-%s is empty", w.From, w.To)
	}
	return nil
}
