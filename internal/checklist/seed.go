package checklist

// Heading shown above the checklist.
const (
	Title    = "障害年金申請 チェックリスト"
	Subtitle = "父親さん（63歳、1型糖尿病）の障害年金申請に必要な確認項目"
	Deadline = "期限：2027年2月9日（64歳になる前）"
)

const (
	SectionHospital = "病院（青洲会病院）"
	SectionPension  = "年金事務所"
	SectionFather   = "父親さん"
)

var seed = []Item{
	{ID: "hospital-1", Section: SectionHospital, Title: "診断書の作成依頼", Question: "診断書を作成してもらいましたか？"},
	{ID: "hospital-2", Section: SectionHospital, Title: "診療記録の取得", Question: "過去5年間の診療記録をもらいましたか？"},
	{ID: "hospital-3", Section: SectionHospital, Title: "初診病院の情報", Question: "35年前の初診病院の名前と所在地："},
	{ID: "hospital-4", Section: SectionHospital, Title: "費用確認", Question: "診断書と診療記録の合計費用："},
	{ID: "hospital-5", Section: SectionHospital, Title: "低血糖発作の記録", Question: "過去の低血糖発作の記録はありますか？（件数・時期など）"},

	{ID: "pension-1", Section: SectionPension, Title: "年金加入状況", Question: "厚生年金と国民年金のどちらで申請すべきか確認した？"},
	{ID: "pension-2", Section: SectionPension, Title: "診断書の様式", Question: "診断書の様式は何号か？（104号 or 101号）"},
	{ID: "pension-3", Section: SectionPension, Title: "必要書類", Question: "必要な書類の完全なリスト："},
	{ID: "pension-4", Section: SectionPension, Title: "初診日の確認", Question: "初診日確認に必要な書類は？"},
	{ID: "pension-5", Section: SectionPension, Title: "窓口訪問予約", Question: "予約日時と担当者の連絡先："},
	{ID: "pension-6", Section: SectionPension, Title: "認定期間", Question: "申請から認定まで何日かかる？"},

	{ID: "father-1", Section: SectionFather, Title: "厚生年金の加入期間", Question: "会社員をしていた時期（開始年月～終了年月）："},
	{ID: "father-2", Section: SectionFather, Title: "国民年金", Question: "国民年金に加入していた時期："},
	{ID: "father-3", Section: SectionFather, Title: "初診日", Question: "35年前の初診日と病院名："},
	{ID: "father-4", Section: SectionFather, Title: "低血糖発作の履歴", Question: "低血糖発作の過去の記録（初回・直近・頻度など）："},
	{ID: "father-5", Section: SectionFather, Title: "合併症", Question: "医者から指摘されている合併症は？"},
	{ID: "father-6", Section: SectionFather, Title: "検査値", Question: "最近の血糖値・HbA1c・Cペプチド値："},
	{ID: "father-7", Section: SectionFather, Title: "医療費", Question: "月の医療費自己負担額："},
}

// Seed returns a fresh copy of the default checklist.
func Seed() []Item {
	out := make([]Item, len(seed))
	copy(out, seed)
	return out
}
