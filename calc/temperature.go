package calc

// Temperatures holds one reading in every supported scale
type Temperatures struct {
	Celsius    float64
	Fahrenheit float64
	Reaumur    float64
	Kelvin     float64
}

// ConvertCelsius converts c to Fahrenheit, Reaumur and Kelvin
func ConvertCelsius(c float64) Temperatures {
	return Temperatures{
		Celsius:    c,
		Fahrenheit: c*9/5 + 32,
		Reaumur:    c * 4 / 5,
		Kelvin:     c + 273.15,
	}
}
