package postgres

// UserModel é o model GORM para usuários
type UserModel struct {
	ID                   string  `gorm:"primaryKey;size:36"`
	Username             string  `gorm:"size:50;uniqueIndex;not null"`
	PasswordHash         string  `gorm:"size:255;not null"`
	Name                 string  `gorm:"size:100;not null"`
	Email                string  `gorm:"size:255;uniqueIndex;not null"`
	Phone                *string `gorm:"size:20"`
	Image                *string `gorm:"size:500"`
	Role                 string  `gorm:"size:20;not null;index"`
	Active               bool    `gorm:"not null"`
	PasswordChangedAt    *int64
	PasswordResetToken   *string `gorm:"size:64;index"`
	PasswordResetExpires *int64
	CreatedAt            int64 `gorm:"autoCreateTime:milli;index"`
	UpdatedAt            int64 `gorm:"autoUpdateTime:milli"`
}

func (UserModel) TableName() string {
	return "users"
}

// ArticleModel é o model GORM para notícias
type ArticleModel struct {
	ID               string     `gorm:"primaryKey;size:36"`
	Title            string     `gorm:"size:200;not null"`
	Subtitle         *string    `gorm:"size:300"`
	Content          *string    `gorm:"type:text"`
	Author           string     `gorm:"size:100;not null"`
	Slug             string     `gorm:"size:250;uniqueIndex;not null"`
	ImageURL         *string    `gorm:"size:500"`
	ImageDescription *string    `gorm:"size:300"`
	Status           string     `gorm:"size:20;not null;index"`
	CreatedByID      string     `gorm:"size:36;not null;index"`
	CreatedBy        UserModel  `gorm:"foreignKey:CreatedByID;constraint:OnDelete:RESTRICT"`
	UpdatedByID      *string    `gorm:"size:36"`
	UpdatedBy        *UserModel `gorm:"foreignKey:UpdatedByID;constraint:OnDelete:SET NULL"`
	CreatedAt        int64      `gorm:"autoCreateTime:milli;index"`
	UpdatedAt        int64      `gorm:"autoUpdateTime:milli"`
}

func (ArticleModel) TableName() string {
	return "articles"
}

// DoctorModel é o model GORM para médicos
type DoctorModel struct {
	ID          string          `gorm:"primaryKey;size:36"`
	Name        string          `gorm:"size:100;not null;index"`
	Specialty   string          `gorm:"size:100;not null"`
	CRM         string          `gorm:"column:crm;size:8;not null"`
	State       string          `gorm:"size:2;not null"`
	Phone       *string         `gorm:"size:11"`
	Email       *string         `gorm:"size:255"`
	Visible     bool            `gorm:"not null;index"`
	Schedules   []ScheduleModel `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE"`
	CreatedByID string          `gorm:"size:36;not null;index"`
	CreatedBy   UserModel       `gorm:"foreignKey:CreatedByID;constraint:OnDelete:RESTRICT"`
	UpdatedByID *string         `gorm:"size:36"`
	UpdatedBy   *UserModel      `gorm:"foreignKey:UpdatedByID;constraint:OnDelete:SET NULL"`
	CreatedAt   int64           `gorm:"autoCreateTime:milli;index"`
	UpdatedAt   int64           `gorm:"autoUpdateTime:milli"`
}

func (DoctorModel) TableName() string {
	return "doctors"
}

// ScheduleModel é o model GORM para escalas semanais
type ScheduleModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	DoctorID  string `gorm:"size:36;not null;index"`
	Position  int    `gorm:"not null"`
	DayOfWeek string `gorm:"size:10;not null"`
	StartTime string `gorm:"size:5;not null"`
	EndTime   string `gorm:"size:5;not null"`
}

func (ScheduleModel) TableName() string {
	return "schedules"
}

// AllModels lista os models na ordem de criação das tabelas
func AllModels() []interface{} {
	return []interface{}{&UserModel{}, &ArticleModel{}, &DoctorModel{}, &ScheduleModel{}}
}
