package dto

type GenerateInput struct {
	ImagePath  string
	OutputPath string
}

type GenerateOutput struct {
	OutputPath  string
	UploadBytes int
	Width       int
	Height      int
}
