package dialog

type State string

const (
	StateIdle State = "idle"

	// Добавление предмета
	StateAddName   State = "add_name"
	StateAddCode   State = "add_code"
	StateAddLab    State = "add_lab"    // ввод "посещено/проведено" по лабораторным
	StateAddTheory State = "add_theory" // то же по теории

	// Настройки
	StateSetMinimum State = "set_minimum"

	// Excel
	StateImportFile State = "import_file" // ожидание .xlsx с предметами

	// Удаление
	StateDeleteConfirm State = "delete_confirm"
)

type Payload map[string]any

type Item struct {
	ChatID  int64
	State   State
	Payload Payload
}
