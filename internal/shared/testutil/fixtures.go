package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ReadmissionCSV is the three-encounter sample used across packages.
// Expected: gender {Male: 2, Female: 1}; gender x readmitted
// {(Female,<30):1, (Female,NO):0, (Male,<30):0, (Male,NO):2}.
const ReadmissionCSV = `encounter_id,gender,readmitted
1,Male,NO
2,Female,<30
3,Male,NO
`

// EncounterCSV is a small extract with every column the default analysis
// touches, including excluded columns and "?" markers.
var EncounterCSV = strings.Join([]string{
	"encounter_id,patient_nbr,race,gender,age,weight,admission_type_id,discharge_disposition_id,admission_source_id,time_in_hospital,payer_code,medical_specialty,num_lab_procedures,num_procedures,num_medications,number_outpatient,number_emergency,number_inpatient,diag_1,diag_2,diag_3,number_diagnoses,max_glu_serum,A1Cresult,metformin,insulin,change,diabetesMed,readmitted",
	"2278392,8222157,Caucasian,Female,[0-10),?,6,25,1,1,?,Pediatrics-Endocrinology,41,0,1,0,0,0,250.83,?,?,1,None,None,No,No,No,No,NO",
	"149190,55629189,Caucasian,Female,[10-20),?,1,1,7,3,?,?,59,0,18,0,0,0,276,250.01,255,9,None,None,No,Up,Ch,Yes,>30",
	"64410,86047875,AfricanAmerican,Female,[20-30),?,1,1,7,2,?,?,11,5,13,2,0,1,648,250,V27,6,None,None,No,No,No,Yes,NO",
	"500364,82442376,Caucasian,Male,[30-40),?,1,1,7,2,?,?,44,1,16,0,0,0,8,250.43,403,7,None,None,No,Up,Ch,Yes,NO",
	"16680,42519267,Caucasian,Male,[40-50),?,1,1,7,1,?,?,51,0,8,0,0,0,197,157,250,5,None,None,No,Steady,Ch,Yes,NO",
	"35754,82637451,Caucasian,Male,[50-60),?,2,1,2,3,?,?,31,6,16,0,0,0,414,411,250,9,None,None,No,Steady,No,Yes,>30",
	"55842,84259809,Caucasian,Male,[60-70),?,3,1,2,4,?,?,70,1,21,0,0,0,414,411,V45,7,None,None,Steady,Steady,Ch,Yes,NO",
	"63768,114882984,Caucasian,Male,[70-80),?,1,1,7,5,?,?,73,0,12,0,0,0,428,492,250,8,None,>8,No,No,No,Yes,>30",
	"12522,48330783,Caucasian,Female,[80-90),?,2,1,4,13,?,?,68,2,28,0,0,0,398,427,38,8,None,None,No,Steady,Ch,Yes,NO",
	"15738,63555939,?,Female,[90-100),?,3,3,4,12,?,InternalMedicine,33,3,18,0,0,0,250.7,198,486,8,None,>7,No,Steady,Ch,Yes,<30",
}, "\n") + "\n"

// WriteFile writes content to name inside a fresh temp dir and returns the path
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}
