package validate

const (
	MaxFieldLen int = 256

	ColorSpecLen int = 6
)
