// Package setting holds the declarative settings schema of the plugin and the
// store that persists the values a user chose for it.
//
// The schema is static data: groups of items with a type, a default and a
// few hints for the settings UI. Coercion of user input lives beside the
// schema in Coercers so that items stay plain serializable values.
package setting

type Type string

const (
	TypeString  Type = "string"
	TypeBoolean Type = "boolean"
	TypeNumber  Type = "number"
	TypeArray   Type = "array"
)

// BulkToggleGroup is the group whose only item switches every boolean on or off.
const BulkToggleGroup = "setAll"

type Item struct {
	// Key is the display key users type in chat commands, e.g. "推送间隔".
	Key       string   `json:"key" yaml:"key"`
	Title     string   `json:"title" yaml:"title"`
	Desc      string   `json:"desc" yaml:"desc"`
	Type      Type     `json:"type" yaml:"type"`
	Default   any      `json:"def" yaml:"def"`
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Component string   `json:"component,omitempty" yaml:"component,omitempty"`
}

type Field struct {
	Name string
	Item Item
}

type Group struct {
	Name   string
	Title  string
	Fields []Field
}

// Schema is ordered for display.
type Schema []Group

func bound(v float64) *float64 {
	return &v
}

// Default is the schema of the plugin.
var Default = Schema{
	{
		Name:  "steam",
		Title: "api设置",
		Fields: []Field{
			{"apiKey", Item{
				Key:     "apiKey",
				Title:   "Steam Web API Key",
				Desc:    "Steamworks Web API key",
				Type:    TypeString,
				Default: "",
			}},
			{"proxy", Item{
				Key:     "proxy",
				Title:   "proxy代理",
				Desc:    "用于加速访问",
				Type:    TypeString,
				Default: "",
			}},
			{"commonProxy", Item{
				Key:     "通用反代",
				Title:   "通用反代",
				Desc:    "通用反代 比如填写: https://example.com/{{url}} 则会替换 {{url}} 为实际请求的url",
				Type:    TypeString,
				Default: "",
			}},
			{"apiProxy", Item{
				Key:     "api反代",
				Title:   "api反代",
				Desc:    "替换https://api.steampowered.com为自定义地址",
				Type:    TypeString,
				Default: "",
			}},
			{"storeProxy", Item{
				Key:     "store反代",
				Title:   "store反代",
				Desc:    "替换https://store.steampowered.com为自定义地址",
				Type:    TypeString,
				Default: "",
			}},
			{"timeout", Item{
				Key:     "超时",
				Title:   "请求超时时间",
				Desc:    "请求超时时间,单位秒",
				Type:    TypeNumber,
				Default: float64(5),
				Min:     bound(0),
				Max:     bound(60),
			}},
		},
	},
	{
		Name:  "push",
		Title: "推送设置",
		Fields: []Field{
			{"enable", Item{
				Key:     "推送",
				Title:   "推送总开关",
				Desc:    "是否开启推送功能",
				Type:    TypeBoolean,
				Default: true,
			}},
			{"defaultPush", Item{
				Key:     "默认推送",
				Title:   "默认开启推送",
				Desc:    "是否默认开启推送, 绑定steamId后自动开启推送",
				Type:    TypeBoolean,
				Default: true,
			}},
			{"stateChange", Item{
				Key:     "状态推送",
				Title:   "状态改变推送",
				Desc:    "是否推送游戏状态改变 比如上线 下线等",
				Type:    TypeBoolean,
				Default: true,
			}},
			{"pushMode", Item{
				Key:     "推送模式",
				Title:   "推送模式",
				Desc:    "推送模式 1: 文字推送 2: 图片推送",
				Type:    TypeNumber,
				Default: float64(1),
				Min:     bound(1),
				Max:     bound(2),
			}},
			{"blackBotList", Item{
				Key:       "推送bot黑名单",
				Title:     "推送黑名单机器人",
				Desc:      "黑名单中的Bot账号不会开启推送",
				Type:      TypeArray,
				Default:   []string{},
				Component: "GTags",
			}},
			{"whiteBotList", Item{
				Key:       "推送bot白名单",
				Title:     "推送白名单机器人",
				Desc:      "只推送白名单Bot账号的状态",
				Type:      TypeArray,
				Default:   []string{},
				Component: "GTags",
			}},
			{"blackGroupList", Item{
				Key:     "推送黑名单",
				Title:   "推送黑名单群",
				Desc:    "不推送黑名单群的状态",
				Type:    TypeArray,
				Default: []string{},
			}},
			{"whiteGroupList", Item{
				Key:     "推送白名单",
				Title:   "推送白名单群",
				Desc:    "只推送白名单群的状态",
				Type:    TypeArray,
				Default: []string{},
			}},
			{"time", Item{
				Key:     "推送间隔",
				Title:   "推送间隔",
				Desc:    "间隔多少分钟推送一次",
				Type:    TypeNumber,
				Default: float64(5),
				Min:     bound(1),
			}},
		},
	},
	{
		Name:  "other",
		Title: "其他设置",
		Fields: []Field{
			{"renderScale", Item{
				Key:     "渲染",
				Title:   "渲染精度",
				Desc:    "可选值50~200，设置高精度会提高图片的精细度，但因图片较大可能会影响渲染与发送速度",
				Type:    TypeNumber,
				Default: float64(120),
				Min:     bound(50),
				Max:     bound(200),
			}},
			{"hiddenLength", Item{
				Key:     "隐藏",
				Title:   "隐藏长度",
				Desc:    "比如库存等超过设置的长度后会隐藏剩余的游戏, 避免太多而导致截图失败",
				Type:    TypeNumber,
				Default: float64(99),
				Min:     bound(1),
			}},
			{"itemLength", Item{
				Key:     "每行个数",
				Title:   "每行最多显示数量",
				Desc:    "截图时每行最多显示的数量",
				Type:    TypeNumber,
				Default: float64(3),
				Min:     bound(1),
			}},
			{"steamAvatar", Item{
				Key:     "展示头像",
				Title:   "展示steam头像",
				Desc:    "是否展示steam头像, 可能会有18+头像",
				Type:    TypeBoolean,
				Default: true,
			}},
		},
	},
	{
		Name:  BulkToggleGroup,
		Title: "一键操作",
		Fields: []Field{
			{"setAll", Item{
				Key:     "全部",
				Title:   "全部设置",
				Desc:    "一键 开启/关闭 全部设置项",
				Type:    TypeBoolean,
				Default: false,
			}},
		},
	},
}

// Lookup returns the item stored under group.field.
func (s Schema) Lookup(group, field string) (Item, bool) {
	for _, g := range s {
		if g.Name != group {
			continue
		}
		for _, f := range g.Fields {
			if f.Name == field {
				return f.Item, true
			}
		}
	}
	return Item{}, false
}
