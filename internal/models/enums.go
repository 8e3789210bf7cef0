package models

import (
	"fmt"
	"strings"
	"time"
)

// DayOfWeek is the closed set of weekly schedule days. Values match the
// Spanish day names stored with court and practice schedules.
type DayOfWeek string

const (
	Monday    DayOfWeek = "LUNES"
	Tuesday   DayOfWeek = "MARTES"
	Wednesday DayOfWeek = "MIERCOLES"
	Thursday  DayOfWeek = "JUEVES"
	Friday    DayOfWeek = "VIERNES"
	Saturday  DayOfWeek = "SABADO"
	Sunday    DayOfWeek = "DOMINGO"
)

// Days lists every valid day in calendar order starting Monday.
var Days = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var diacriticReplacer = strings.NewReplacer(
	"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ü", "U",
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u",
)

// ParseDayOfWeek normalises raw input (case and diacritic insensitive) into a
// DayOfWeek. It is the single normalization point for day values entering the
// system.
func ParseDayOfWeek(raw string) (DayOfWeek, error) {
	normalized := strings.ToUpper(strings.TrimSpace(diacriticReplacer.Replace(raw)))
	day := DayOfWeek(normalized)
	for _, d := range Days {
		if day == d {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid day of week: %q", raw)
}

var weekdayNames = map[time.Weekday]DayOfWeek{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// DayOfWeekFromDate maps a calendar date onto its DayOfWeek.
func DayOfWeekFromDate(date time.Time) DayOfWeek {
	return weekdayNames[date.Weekday()]
}

// SlotState describes the occupancy state of a court slot.
type SlotState string

const (
	SlotFree        SlotState = "FREE"
	SlotRented      SlotState = "RENTED"
	SlotPractice    SlotState = "PRACTICE"
	SlotMaintenance SlotState = "MAINTENANCE"
)

// SlotStates lists every valid slot state.
var SlotStates = []SlotState{SlotFree, SlotRented, SlotPractice, SlotMaintenance}

// ParseSlotState validates raw input against the slot state enumeration.
func ParseSlotState(raw string) (SlotState, error) {
	state := SlotState(strings.ToUpper(strings.TrimSpace(raw)))
	for _, s := range SlotStates {
		if state == s {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid slot state: %q", raw)
}

// RentalState describes the lifecycle of a rental.
type RentalState string

const (
	RentalReserved  RentalState = "RESERVED"
	RentalCancelled RentalState = "CANCELLED"
	RentalCompleted RentalState = "COMPLETED"
)

// RentalStates lists every valid rental state.
var RentalStates = []RentalState{RentalReserved, RentalCancelled, RentalCompleted}

// ParseRentalState validates raw input against the rental state enumeration.
func ParseRentalState(raw string) (RentalState, error) {
	state := RentalState(strings.ToUpper(strings.TrimSpace(raw)))
	for _, s := range RentalStates {
		if state == s {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid rental state: %q", raw)
}

// Sport is the closed set of sports the club offers.
type Sport string

const (
	SportFootball   Sport = "FUTBOL"
	SportBasketball Sport = "BASQUET"
	SportSwimming   Sport = "NATACION"
	SportHandball   Sport = "HANDBALL"
)

// Sports lists every valid sport.
var Sports = []Sport{SportFootball, SportBasketball, SportSwimming, SportHandball}

// ParseSport validates raw input against the sport enumeration.
func ParseSport(raw string) (Sport, error) {
	sport := Sport(strings.ToUpper(strings.TrimSpace(raw)))
	for _, s := range Sports {
		if sport == s {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid sport: %q", raw)
}

// PlanType distinguishes individual memberships from family plans.
type PlanType string

const (
	PlanIndividual PlanType = "INDIVIDUAL"
	PlanFamily     PlanType = "FAMILIAR"
)

// MemberStatus describes a member account state.
type MemberStatus string

const (
	MemberActive   MemberStatus = "ACTIVE"
	MemberInactive MemberStatus = "INACTIVE"
	MemberBlocked  MemberStatus = "BLOCKED"
)
