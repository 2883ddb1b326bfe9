package user

// User 可登录的账号
// 演示环境只有一个由配置提供的账号，密码以bcrypt哈希保存
type User struct {
	Username     string
	PasswordHash string
}

// NewUser 创建账号，hashedPassword必须是bcrypt哈希
func NewUser(username, hashedPassword string) *User {
	return &User{
		Username:     username,
		PasswordHash: hashedPassword,
	}
}
