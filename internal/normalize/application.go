package normalize

import "github.com/tidwall/gjson"

// Application is the canonical housing-application record.
type Application struct {
	ApplicationID int64          `json:"applicationId"`
	StudentID     int64          `json:"studentId"`
	StudentName   string         `json:"studentName"`
	Status        string         `json:"status"`
	SubmittedAt   string         `json:"submittedAt"`
	StudentInfo   map[string]any `json:"studentInfo"`
	FatherInfo    map[string]any `json:"fatherInfo,omitempty"`
	GuardianInfo  map[string]any `json:"guardianInfo,omitempty"`
	SecondaryInfo map[string]any `json:"secondaryInfo,omitempty"`
	AcademicInfo  map[string]any `json:"academicInfo,omitempty"`
}

// ApplicationRecord normalizes one raw application. Each person-info block is
// resolved independently; a missing block never blocks the others. A source
// without a status is reported as "pending" — that is a console policy
// default, not a fact from the data.
func ApplicationRecord(doc gjson.Result) Application {
	student := Block(doc, "studentInfo", "student", "studentData", "studentDto")
	if student == nil {
		student = map[string]any{}
	}

	record := Application{
		ApplicationID: Int(doc, 0, "applicationId", "applicationID", "id"),
		StudentID:     Int(doc, 0, "studentId", "studentInfo.studentId", "student.studentId", "studentDto.studentId"),
		StudentName: Str(doc, "",
			"studentName",
			"studentInfo.fullName", "student.fullName", "studentData.fullName", "studentDto.fullName",
			"studentInfo.name", "student.name", "studentData.name", "studentDto.name"),
		Status:        Str(doc, "pending", "status", "applicationStatus"),
		SubmittedAt:   Str(doc, "", "submittedAt", "submissionDate", "createdAt"),
		StudentInfo:   student,
		FatherInfo:    Block(doc, "fatherInfo", "father", "fatherData"),
		GuardianInfo:  Block(doc, "guardianInfo", "guardian", "guardianData"),
		SecondaryInfo: Block(doc, "secondaryInfo", "secondary", "secondaryData"),
		AcademicInfo:  Block(doc, "academicInfo", "academic", "academicData"),
	}
	return record
}
