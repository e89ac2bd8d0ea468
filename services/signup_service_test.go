package services

import (
	"testing"
	"time"

	"github.com/alikalatearabi/salemina-main-app-backend/models"
)

func TestNextSignupStepProgression(t *testing.T) {
	user := &models.User{Phone: "09120000000"}

	if step := NextSignupStep(user); step != StepBasicInfo {
		t.Fatalf("fresh user next step = %s, want %s", step, StepBasicInfo)
	}

	birth := time.Date(1990, 5, 1, 0, 0, 0, 0, time.Local)
	user.Name = "Sara"
	user.Gender = "FEMALE"
	user.BirthDate = &birth
	if step := NextSignupStep(user); step != StepPhysicalAttributes {
		t.Fatalf("after basic info next step = %s, want %s", step, StepPhysicalAttributes)
	}

	user.Height = fptr(165)
	user.Weight = fptr(60)
	user.IdealWeight = fptr(58)
	if step := NextSignupStep(user); step != StepHealthInfo {
		t.Fatalf("after physical attributes next step = %s, want %s", step, StepHealthInfo)
	}

	user.ActivityLevel = "MODERATE"
	if step := NextSignupStep(user); step != StepDietaryPreferences {
		t.Fatalf("after health info next step = %s, want %s", step, StepDietaryPreferences)
	}

	user.AppetiteMode = "NORMAL"
	// allergies are optional and never block progress
	if step := NextSignupStep(user); step != StepWaterIntake {
		t.Fatalf("after dietary preferences next step = %s, want %s", step, StepWaterIntake)
	}

	user.WaterIntake = fptr(2.5)
	if step := NextSignupStep(user); step != StepComplete {
		t.Fatalf("after water intake next step = %s, want %s", step, StepComplete)
	}

	user.SignupComplete = true
	if step := NextSignupStep(user); step != "" {
		t.Fatalf("completed user next step = %q, want empty", step)
	}
}

func TestCompletedStepsTracksFilledFields(t *testing.T) {
	user := &models.User{Phone: "09120000000"}
	got := CompletedSteps(user)
	if len(got) != 1 || got[0] != "phone" {
		t.Fatalf("fresh user steps = %v, want [phone]", got)
	}

	user.ActivityLevel = "LIGHT"
	user.WaterIntake = fptr(2)
	got = CompletedSteps(user)
	want := map[string]bool{"phone": true, StepHealthInfo: true, StepWaterIntake: true}
	if len(got) != len(want) {
		t.Fatalf("steps = %v, want keys %v", got, want)
	}
	for _, s := range got {
		if !want[s] {
			t.Errorf("unexpected step %q in %v", s, got)
		}
	}
}
