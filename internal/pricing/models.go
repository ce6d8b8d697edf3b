package pricing

// CreateRuleRequest creates a dynamic pricing rule.
// Start and end are minutes-of-day boundaries in HH:MM form; a rule whose
// start equals its end covers the whole day, and start after end wraps past
// midnight.
type CreateRuleRequest struct {
	Name       string  `json:"name" binding:"required,min=2,max=100"`
	StartTime  string  `json:"start_time" binding:"required,time_of_day"`
	EndTime    string  `json:"end_time" binding:"required,time_of_day"`
	DayType    string  `json:"day_type" binding:"required,day_type"`
	Multiplier float64 `json:"multiplier" binding:"required,gt=0,lte=10"`
}

// UpdateRuleRequest partially updates a rule. Nil fields are left unchanged.
type UpdateRuleRequest struct {
	Name       *string  `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	StartTime  *string  `json:"start_time,omitempty" binding:"omitempty,time_of_day"`
	EndTime    *string  `json:"end_time,omitempty" binding:"omitempty,time_of_day"`
	DayType    *string  `json:"day_type,omitempty" binding:"omitempty,day_type"`
	Multiplier *float64 `json:"multiplier,omitempty" binding:"omitempty,gt=0,lte=10"`
	IsActive   *bool    `json:"is_active,omitempty"`
}
