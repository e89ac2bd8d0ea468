package config

import (
	"log"

	"github.com/alikalatearabi/salemina-main-app-backend/models"
)

type seedIllness struct {
	name        string
	persianName string
	levels      [][2]string // name, persianName
}

var seedIllnesses = []seedIllness{
	{"Thyroid", "تیروئید", [][2]string{
		{"Hypothyroidism", "کم کاری"}, {"Hyperthyroidism", "پر کاری"}, {"Normal", "نرمال"}, {"Unknown", "نامشخص"},
	}},
	{"BloodPressure", "فشارخون", [][2]string{
		{"Low", "پایین"}, {"Normal", "نرمال"}, {"High", "بالا"}, {"Unknown", "نامشخص"},
	}},
	{"Diabetes", "دیابت", [][2]string{
		{"Healthy", "سالم"}, {"PreDiabetes", "پیش دیابت"}, {"Diabetes", "دیابت"},
	}},
	{"CardiovascularDisease", "بیماری قلبی عروقی", [][2]string{
		{"Yes", "دارم"}, {"No", "ندارم"},
	}},
	{"FattyLiver", "کبد چرب", [][2]string{
		{"Yes", "دارم"}, {"No", "ندارم"},
	}},
	{"Cholesterol", "کلسترول", [][2]string{
		{"Normal", "نرمال"}, {"High", "بالا"}, {"Unknown", "نامشخص"},
	}},
	{"Anemia", "کم خونی", [][2]string{
		{"Yes", "دارم"}, {"No", "ندارم"},
	}},
}

// SeedReferenceData fills the signup reference tables on first boot.
// Idempotent: does nothing when illnesses already exist.
func SeedReferenceData() {
	var count int64
	if err := DB.Model(&models.Illness{}).Count(&count).Error; err != nil {
		log.Printf("reference seed skipped: %v", err)
		return
	}
	if count > 0 {
		return
	}

	for _, s := range seedIllnesses {
		illness := models.Illness{Name: s.name, PersianName: s.persianName}
		for _, lvl := range s.levels {
			illness.Levels = append(illness.Levels, models.IllnessLevel{Name: lvl[0], PersianName: lvl[1]})
		}
		if err := DB.Create(&illness).Error; err != nil {
			log.Printf("seeding illness %s failed: %v", s.name, err)
		}
	}
	log.Printf("seeded %d illnesses", len(seedIllnesses))
}
