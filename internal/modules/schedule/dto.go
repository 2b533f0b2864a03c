package schedule

// SlotRange is a catalog interval referenced by its exact HH:MM bounds.
type SlotRange struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type SetDayRequest struct {
	Day   int         `json:"day" binding:"required,min=1,max=7"`
	Slots []SlotRange `json:"slots"`
}

// DayAvailability is one weekday of the photographer's recurring
// schedule. Slots is never nil so consumers don't special-case
// missing days.
type DayAvailability struct {
	Day   int         `json:"day"`
	Slots []SlotRange `json:"slots"`
}
