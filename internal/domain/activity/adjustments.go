package activity

// RiskAdjustment is an additive correction applied to the base weather
// risk scores for one activity. Zero fields leave the base score alone.
type RiskAdjustment struct {
	Hot           float64
	Cold          float64
	Windy         float64
	Wet           float64
	Uncomfortable float64
}

// adjustments tunes risk sensitivity per activity. A picnic tolerates
// rain far worse than a vacation; camping cares about overnight cold.
var adjustments = map[Type]RiskAdjustment{
	Vacation: {Hot: 5, Wet: 10},
	Hiking:   {Hot: 15, Cold: 10, Windy: 10, Wet: 20},
	Fishing:  {Cold: 10, Windy: 20, Wet: 15},
	Picnic:   {Hot: 10, Windy: 15, Wet: 30},
	Sports:   {Hot: 20, Windy: 15, Wet: 25},
	Camping:  {Cold: 20, Windy: 15, Wet: 25},
}

// Adjustment returns the risk correction vector for the activity.
func (t Type) Adjustment() RiskAdjustment {
	return adjustments[t]
}
