package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/docforge-io/docstyler/internal/style"
)

var presetDescriptions = map[string]string{
	"default":  "通用默认样式",
	"academic": "学术论文样式",
	"official": "公文样式",
}

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "样式目录管理",
	Long: `管理排版使用的样式目录。

样式目录按块类别给出字体、字号、加粗、对齐、缩进与行距；
未指定的类别回退到正文条目，未指定的字段回退到内置默认值。

子命令:
  list    列出内置样式预设
  show    显示某个预设或样式文件的完整内容
  init    将内置预设导出为可编辑的 YAML 文件`,
}

var stylesListCmd = &cobra.Command{
	Use:   "list",
	Short: "列出内置样式预设",
	Run:   runStylesList,
}

var stylesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "显示样式目录内容",
	Long: `显示内置预设或 YAML 样式文件的完整条目。

示例:
  docstyler styles show academic
  docstyler styles show mystyle.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runStylesShow,
}

var (
	stylesInitOutput string
	stylesInitForce  bool
)

var stylesInitCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "导出内置预设为 YAML 文件",
	Long: `将内置样式预设写入 YAML 文件，作为自定义样式的起点。

导出的文件可直接传给 convert 的 --style 参数。

示例:
  docstyler styles init academic -o mystyle.yaml
  docstyler convert thesis.docx --style mystyle.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runStylesInit,
}

func init() {
	stylesInitCmd.Flags().StringVarP(&stylesInitOutput, "output", "o", "style.yaml", "输出文件路径")
	stylesInitCmd.Flags().BoolVarP(&stylesInitForce, "force", "f", false, "覆盖已存在的文件")

	stylesCmd.AddCommand(stylesListCmd)
	stylesCmd.AddCommand(stylesShowCmd)
	stylesCmd.AddCommand(stylesInitCmd)

	rootCmd.AddCommand(stylesCmd)
}

func runStylesList(cmd *cobra.Command, args []string) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "预设\t说明")
	fmt.Fprintln(w, "----\t----")
	for _, name := range style.Presets() {
		fmt.Fprintf(w, "%s\t%s\n", name, presetDescriptions[name])
	}
}

func runStylesShow(cmd *cobra.Command, args []string) error {
	catalog, err := style.ResolveFlag(args[0])
	if err != nil {
		return err
	}

	entries := make(map[string]*style.Spec)
	for _, kind := range catalog.Kinds() {
		spec, _ := catalog.Get(kind)
		entries[kind] = spec
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("样式输出失败: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runStylesInit(cmd *cobra.Command, args []string) error {
	catalog, err := style.Builtin(args[0])
	if err != nil {
		return err
	}

	if _, err := os.Stat(stylesInitOutput); err == nil && !stylesInitForce {
		return fmt.Errorf("文件已存在: %s\n使用 --force 覆盖", stylesInitOutput)
	}
	if err := style.Save(catalog, stylesInitOutput); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "样式文件已生成: %s\n", stylesInitOutput)
	return nil
}
