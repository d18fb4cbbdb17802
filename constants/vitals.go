package constants

// VitalSignItemIDs are the CHARTEVENTS ITEMID values retained in the
// vital-signs extract. Both CareVue and MetaVision item IDs are listed as
// MIMIC-III spans both source systems.
var VitalSignItemIDs = []string{
	// heart rate
	"211", "220045",
	// systolic blood pressure
	"51", "442", "455", "6701", "220179", "220050",
	// diastolic blood pressure
	"8368", "8440", "8441", "8555", "220180", "220051",
	// temperature
	"223761", "678", "679", "223762",
	// respiratory rate
	"615", "618", "220210", "224690",
}
