package domain

import "testing"

func TestCategorizeCalories(t *testing.T) {
	tests := []struct {
		calories *float64
		want     HealthCategory
	}{
		{nil, HealthUnknown},
		{Float(-5), HealthUnknown},
		{Float(0), HealthLowCalorie},
		{Float(199.99), HealthLowCalorie},
		{Float(200), HealthModerate},
		{Float(399), HealthModerate},
		{Float(400), HealthHighCalorie},
		{Float(600), HealthVeryHighCalorie},
		{Float(2500), HealthVeryHighCalorie},
	}
	for _, tt := range tests {
		if got := CategorizeCalories(tt.calories); got != tt.want {
			t.Errorf("CategorizeCalories(%v) = %q, want %q", tt.calories, got, tt.want)
		}
	}
}

func TestBuildSearchableText(t *testing.T) {
	r := Recipe{Title: "chicken soup", Ingredients: "chicken, carrots"}
	if got := r.BuildSearchableText(); got != "chicken soup chicken, carrots" {
		t.Fatalf("got %q", got)
	}
}

func TestDisplayTitle(t *testing.T) {
	if got := (Recipe{Title: "quick vegan chili"}).DisplayTitle(); got != "Quick Vegan Chili" {
		t.Fatalf("got %q", got)
	}
}
