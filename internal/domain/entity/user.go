package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu        UserState = "main_menu"         // В главном меню
	StateAwaitingCarType UserState = "awaiting_car_type" // Ожидание модели автомобиля
	StateAwaitingPhoto   UserState = "awaiting_photo"    // Ожидание фото повреждений
	StateProcessing      UserState = "processing"        // Обработка изображения
)

// User представляет пользователя бота
type User struct {
	ID      int64     // Telegram User ID
	ChatID  int64     // Telegram Chat ID
	State   UserState // Текущее состояние пользователя
	CarType string    // Модель автомобиля, указанная пользователем
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// SetCarType запоминает модель автомобиля
func (u *User) SetCarType(carType string) {
	u.CarType = carType
}
