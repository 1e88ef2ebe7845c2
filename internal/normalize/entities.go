package normalize

import "github.com/tidwall/gjson"

type Room struct {
	RoomID     int64  `json:"roomId"`
	BuildingID int64  `json:"buildingId"`
	RoomNumber string `json:"roomNumber"`
	Capacity   int64  `json:"capacity"`
	Status     string `json:"status"`
}

func RoomRecord(doc gjson.Result) Room {
	return Room{
		RoomID:     Int(doc, 0, "roomId", "roomID", "id"),
		BuildingID: Int(doc, 0, "buildingId", "buildingID"),
		RoomNumber: Str(doc, "", "roomNumber", "number", "name"),
		Capacity:   Int(doc, 0, "capacity", "beds"),
		Status:     Str(doc, "available", "status", "roomStatus"),
	}
}

type Student struct {
	StudentID  int64  `json:"studentId"`
	FullName   string `json:"fullName"`
	NationalID string `json:"nationalId"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Status     string `json:"status"`
}

func StudentRecord(doc gjson.Result) Student {
	return Student{
		StudentID:  Int(doc, 0, "studentId", "studentID", "id"),
		FullName:   Str(doc, "", "fullName", "name", "studentName"),
		NationalID: Str(doc, "", "nationalId", "nationalID", "nationalNumber"),
		Phone:      Str(doc, "", "phone", "phoneNumber", "mobile"),
		Email:      Str(doc, "", "email"),
		Status:     Str(doc, "", "status"),
	}
}

type Payment struct {
	PaymentID   int64   `json:"paymentId"`
	StudentID   int64   `json:"studentId"`
	StudentName string  `json:"studentName"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	PaidAt      string  `json:"paidAt"`
}

func PaymentRecord(doc gjson.Result) Payment {
	return Payment{
		PaymentID:   Int(doc, 0, "paymentId", "paymentID", "id"),
		StudentID:   Int(doc, 0, "studentId", "studentID"),
		StudentName: Str(doc, "", "studentName", "student.fullName", "student.name"),
		Amount:      Float(doc, 0, "amount", "value"),
		Status:      Str(doc, "pending", "status", "paymentStatus"),
		PaidAt:      Str(doc, "", "paidAt", "paymentDate", "createdAt"),
	}
}

type Complaint struct {
	ComplaintID int64  `json:"complaintId"`
	StudentName string `json:"studentName"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Room        string `json:"room"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	Resolution  string `json:"resolution,omitempty"`
}

func ComplaintRecord(doc gjson.Result) Complaint {
	return Complaint{
		ComplaintID: Int(doc, 0, "complaintId", "complaintID", "id"),
		StudentName: Str(doc, "", "studentName", "student.fullName", "student.name"),
		Title:       Str(doc, "", "title", "subject"),
		Message:     Str(doc, "", "message", "description", "body"),
		Room:        Str(doc, "", "room", "roomNumber"),
		Priority:    Str(doc, "medium", "priority"),
		Status:      Str(doc, "unresolved", "status", "complaintStatus"),
		CreatedAt:   Str(doc, "", "createdAt", "submittedAt"),
		Resolution:  Str(doc, "", "resolution"),
	}
}

type Notification struct {
	NotificationID int64  `json:"notificationId"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	Recipients     string `json:"recipients"`
	Type           string `json:"type"`
	SentAt         string `json:"sentAt"`
}

func NotificationRecord(doc gjson.Result) Notification {
	return Notification{
		NotificationID: Int(doc, 0, "notificationId", "notificationID", "id"),
		Title:          Str(doc, "", "title"),
		Message:        Str(doc, "", "message", "body"),
		Recipients:     Str(doc, "All Students", "recipients", "audience"),
		Type:           Str(doc, "", "type", "category"),
		SentAt:         Str(doc, "", "sentAt", "createdAt"),
	}
}
