package dto

// CourseRequest 课程写入请求
type CourseRequest struct {
	Code         string `json:"code" binding:"required"`
	Title        string `json:"title" binding:"required"`
	DepartmentID *uint  `json:"department_id"`
	Level        string `json:"level"`
	Semester     string `json:"semester"`
}

// DepartmentRequest 院系写入请求
type DepartmentRequest struct {
	Name    string `json:"name" binding:"required"`
	Code    string `json:"code" binding:"required"`
	Faculty string `json:"faculty"`
}
