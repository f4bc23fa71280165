package handler

import (
	"fmt"
	"net/http"
	"time"
)

// parsePeriod lê os parâmetros start e end (yyyy-mm-dd) da query string.
// As duas pontas do período são inclusivas.
func parsePeriod(r *http.Request) (time.Time, time.Time, error) {
	startParam := r.URL.Query().Get("start")
	endParam := r.URL.Query().Get("end")

	if startParam == "" || endParam == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("é necessário informar start e end nos parâmetros")
	}

	startDate, err := time.Parse(time.DateOnly, startParam)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("data inicial inválida, use o formato yyyy-mm-dd")
	}

	endDate, err := time.Parse(time.DateOnly, endParam)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("data final inválida, use o formato yyyy-mm-dd")
	}

	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("data final anterior à data inicial")
	}

	// A ponta final cobre o dia inteiro, inclusive vendas com horário
	endDate = endDate.Add(24*time.Hour - time.Second)

	return startDate, endDate, nil
}
