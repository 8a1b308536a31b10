package engine

// Entity dictionary: surface keyword → (category, canonical name).
// Multiple keywords map onto one canonical entity (synonym grouping);
// the extractor's longest-match discipline keeps substring keywords like
// "삼성" from double-counting inside "삼성전자".

// EntityCategory classifies a dictionary entry. The set is open: callers may
// introduce new categories through an extra dictionary.
type EntityCategory string

const (
	CategoryCompany     EntityCategory = "company"
	CategoryPerson      EntityCategory = "person"
	CategoryTechnology  EntityCategory = "technology"
	CategoryCrypto      EntityCategory = "crypto"
	CategoryIndex       EntityCategory = "index"
	CategorySector      EntityCategory = "sector"
	CategoryMacro       EntityCategory = "macro"
	CategoryInstitution EntityCategory = "institution"
	CategoryProduct     EntityCategory = "product"
	CategoryCommodity   EntityCategory = "commodity"
	CategoryCountry     EntityCategory = "country"
	CategoryRegion      EntityCategory = "region"
)

// DictEntry is the value side of an entity dictionary.
type DictEntry struct {
	Type EntityCategory
	Name string
}

var companiesKR = map[string]DictEntry{
	"삼성전자":  {CategoryCompany, "Samsung Electronics"},
	"삼성":    {CategoryCompany, "Samsung Electronics"},
	"SK하이닉스": {CategoryCompany, "SK Hynix"},
	"하이닉스":  {CategoryCompany, "SK Hynix"},
	"현대차":   {CategoryCompany, "Hyundai Motor"},
	"LG전자":  {CategoryCompany, "LG Electronics"},
	"카카오":   {CategoryCompany, "Kakao"},
	"네이버":   {CategoryCompany, "Naver"},
	"쿠팡":    {CategoryCompany, "Coupang"},
	"토스":    {CategoryCompany, "Toss"},
	"셀트리온":  {CategoryCompany, "Celltrion"},
	"하이브":   {CategoryCompany, "HYBE"},
	"크래프톤":  {CategoryCompany, "Krafton"},
}

var companiesGlobal = map[string]DictEntry{
	// US big tech
	"Apple": {CategoryCompany, "Apple"}, "애플": {CategoryCompany, "Apple"},
	"Tesla": {CategoryCompany, "Tesla"}, "테슬라": {CategoryCompany, "Tesla"},
	"NVIDIA": {CategoryCompany, "NVIDIA"}, "엔비디아": {CategoryCompany, "NVIDIA"},
	"Google": {CategoryCompany, "Google"}, "구글": {CategoryCompany, "Google"},
	"Alphabet": {CategoryCompany, "Google"},
	"Amazon":   {CategoryCompany, "Amazon"}, "아마존": {CategoryCompany, "Amazon"},
	"Microsoft": {CategoryCompany, "Microsoft"}, "마이크로소프트": {CategoryCompany, "Microsoft"},
	"Meta": {CategoryCompany, "Meta"}, "메타": {CategoryCompany, "Meta"},
	"Facebook": {CategoryCompany, "Meta"},
	"Netflix":  {CategoryCompany, "Netflix"}, "넷플릭스": {CategoryCompany, "Netflix"},
	"AMD":   {CategoryCompany, "AMD"},
	"Intel": {CategoryCompany, "Intel"}, "인텔": {CategoryCompany, "Intel"},
	"Qualcomm": {CategoryCompany, "Qualcomm"}, "퀄컴": {CategoryCompany, "Qualcomm"},
	"Broadcom": {CategoryCompany, "Broadcom"},
	"Oracle":   {CategoryCompany, "Oracle"}, "오라클": {CategoryCompany, "Oracle"},
	"Salesforce":         {CategoryCompany, "Salesforce"},
	"Adobe":              {CategoryCompany, "Adobe"},
	"IBM":                {CategoryCompany, "IBM"},
	"Cisco":              {CategoryCompany, "Cisco"},
	"PayPal":             {CategoryCompany, "PayPal"},
	"Uber":               {CategoryCompany, "Uber"},
	"Airbnb":             {CategoryCompany, "Airbnb"},
	"Spotify":            {CategoryCompany, "Spotify"},
	"Snap":               {CategoryCompany, "Snap"},
	"Pinterest":          {CategoryCompany, "Pinterest"},
	"Block":              {CategoryCompany, "Block"},
	"Palantir":           {CategoryCompany, "Palantir"},
	"Snowflake":          {CategoryCompany, "Snowflake"},
	"Databricks":         {CategoryCompany, "Databricks"},
	"Shopify":            {CategoryCompany, "Shopify"},
	"Stripe":             {CategoryCompany, "Stripe"},
	"CrowdStrike":        {CategoryCompany, "CrowdStrike"},
	"Palo Alto Networks": {CategoryCompany, "Palo Alto Networks"},
	"Samsung":            {CategoryCompany, "Samsung Electronics"},
	"TSMC":               {CategoryCompany, "TSMC"},
	// AI labs
	"OpenAI": {CategoryCompany, "OpenAI"}, "오픈AI": {CategoryCompany, "OpenAI"},
	"Anthropic": {CategoryCompany, "Anthropic"}, "앤트로픽": {CategoryCompany, "Anthropic"},
	"DeepMind": {CategoryCompany, "DeepMind"}, "딥마인드": {CategoryCompany, "DeepMind"},
	"Mistral":      {CategoryCompany, "Mistral"},
	"Cohere":       {CategoryCompany, "Cohere"},
	"xAI":          {CategoryCompany, "xAI"},
	"Hugging Face": {CategoryCompany, "Hugging Face"},
	"Stability AI": {CategoryCompany, "Stability AI"},
	"Midjourney":   {CategoryCompany, "Midjourney"},
	// CN/JP
	"Alibaba": {CategoryCompany, "Alibaba"}, "알리바바": {CategoryCompany, "Alibaba"},
	"Tencent": {CategoryCompany, "Tencent"}, "텐센트": {CategoryCompany, "Tencent"},
	"Baidu": {CategoryCompany, "Baidu"}, "바이두": {CategoryCompany, "Baidu"},
	"BYD": {CategoryCompany, "BYD"}, "비야디": {CategoryCompany, "BYD"},
	"SoftBank": {CategoryCompany, "SoftBank"}, "소프트뱅크": {CategoryCompany, "SoftBank"},
	"DeepSeek": {CategoryCompany, "DeepSeek"}, "딥시크": {CategoryCompany, "DeepSeek"},
	"ByteDance": {CategoryCompany, "ByteDance"}, "바이트댄스": {CategoryCompany, "ByteDance"},
	// Finance
	"Berkshire Hathaway": {CategoryCompany, "Berkshire Hathaway"}, "버크셔": {CategoryCompany, "Berkshire Hathaway"},
	"JPMorgan": {CategoryCompany, "JPMorgan"}, "JP모건": {CategoryCompany, "JPMorgan"},
	"Goldman Sachs": {CategoryCompany, "Goldman Sachs"}, "골드만삭스": {CategoryCompany, "Goldman Sachs"},
	"Morgan Stanley": {CategoryCompany, "Morgan Stanley"},
	"BlackRock":      {CategoryCompany, "BlackRock"},
	"Citadel":        {CategoryCompany, "Citadel"},
}

var aiML = map[string]DictEntry{
	"Transformer":            {CategoryTechnology, "Transformer"},
	"GPT":                    {CategoryTechnology, "GPT"},
	"GPT-4":                  {CategoryTechnology, "GPT-4"},
	"GPT-4o":                 {CategoryTechnology, "GPT-4o"},
	"GPT-3":                  {CategoryTechnology, "GPT-3"},
	"ChatGPT":                {CategoryTechnology, "ChatGPT"},
	"BERT":                   {CategoryTechnology, "BERT"},
	"LLM":                    {CategoryTechnology, "LLM"},
	"diffusion":              {CategoryTechnology, "Diffusion Model"},
	"Stable Diffusion":       {CategoryTechnology, "Stable Diffusion"},
	"DALL-E":                 {CategoryTechnology, "DALL-E"},
	"RAG":                    {CategoryTechnology, "RAG"},
	"fine-tuning":            {CategoryTechnology, "Fine-tuning"},
	"finetuning":             {CategoryTechnology, "Fine-tuning"},
	"embedding":              {CategoryTechnology, "Embedding"},
	"attention mechanism":    {CategoryTechnology, "Attention"},
	"neural network":         {CategoryTechnology, "Neural Network"},
	"deep learning":          {CategoryTechnology, "Deep Learning"},
	"machine learning":       {CategoryTechnology, "Machine Learning"},
	"reinforcement learning": {CategoryTechnology, "Reinforcement Learning"},
	"NLP":                    {CategoryTechnology, "NLP"},
	"computer vision":        {CategoryTechnology, "Computer Vision"},
	"generative AI":          {CategoryTechnology, "Generative AI"},
	"생성형 AI":                 {CategoryTechnology, "Generative AI"},
	"AGI":                    {CategoryTechnology, "AGI"},
	"multimodal":             {CategoryTechnology, "Multimodal"},
	"prompt engineering":     {CategoryTechnology, "Prompt Engineering"},
	"LoRA":                   {CategoryTechnology, "LoRA"},
	"vector database":        {CategoryTechnology, "Vector Database"},
	"langchain":              {CategoryTechnology, "LangChain"},
	"LangChain":              {CategoryTechnology, "LangChain"},
	"인공지능":                   {CategoryTechnology, "AI"},
}

var programming = map[string]DictEntry{
	"Python":      {CategoryTechnology, "Python"},
	"JavaScript":  {CategoryTechnology, "JavaScript"},
	"TypeScript":  {CategoryTechnology, "TypeScript"},
	"Rust":        {CategoryTechnology, "Rust"},
	"Java":        {CategoryTechnology, "Java"},
	"C++":         {CategoryTechnology, "C++"},
	"C#":          {CategoryTechnology, "C#"},
	"Swift":       {CategoryTechnology, "Swift"},
	"Kotlin":      {CategoryTechnology, "Kotlin"},
	"React":       {CategoryTechnology, "React"},
	"Next.js":     {CategoryTechnology, "Next.js"},
	"Node.js":     {CategoryTechnology, "Node.js"},
	"Vue.js":      {CategoryTechnology, "Vue.js"},
	"Angular":     {CategoryTechnology, "Angular"},
	"Svelte":      {CategoryTechnology, "Svelte"},
	"Docker":      {CategoryTechnology, "Docker"},
	"Kubernetes":  {CategoryTechnology, "Kubernetes"},
	"AWS":         {CategoryTechnology, "AWS"},
	"GCP":         {CategoryTechnology, "GCP"},
	"Azure":       {CategoryTechnology, "Azure"},
	"Linux":       {CategoryTechnology, "Linux"},
	"Git":         {CategoryTechnology, "Git"},
	"GitHub":      {CategoryTechnology, "GitHub"},
	"PostgreSQL":  {CategoryTechnology, "PostgreSQL"},
	"MongoDB":     {CategoryTechnology, "MongoDB"},
	"Redis":       {CategoryTechnology, "Redis"},
	"Kafka":       {CategoryTechnology, "Kafka"},
	"GraphQL":     {CategoryTechnology, "GraphQL"},
	"Terraform":   {CategoryTechnology, "Terraform"},
	"FastAPI":     {CategoryTechnology, "FastAPI"},
	"Django":      {CategoryTechnology, "Django"},
	"Flask":       {CategoryTechnology, "Flask"},
	"Spring Boot": {CategoryTechnology, "Spring Boot"},
	"WebAssembly": {CategoryTechnology, "WebAssembly"},
	"WASM":        {CategoryTechnology, "WebAssembly"},
}

var cryptoAssets = map[string]DictEntry{
	"Bitcoin": {CategoryCrypto, "BTC"}, "비트코인": {CategoryCrypto, "BTC"},
	"Ethereum": {CategoryCrypto, "ETH"}, "이더리움": {CategoryCrypto, "ETH"},
	"Solana": {CategoryCrypto, "SOL"}, "솔라나": {CategoryCrypto, "SOL"},
	"Cardano":   {CategoryCrypto, "ADA"},
	"Polkadot":  {CategoryCrypto, "DOT"},
	"Chainlink": {CategoryCrypto, "LINK"},
	"Avalanche": {CategoryCrypto, "AVAX"},
	"Polygon":   {CategoryCrypto, "MATIC"},
	"Arbitrum":  {CategoryCrypto, "ARB"},
	"Optimism":  {CategoryCrypto, "OP"},
	"Uniswap":   {CategoryCrypto, "UNI"},
	"Aave":      {CategoryCrypto, "AAVE"},
	"DeFi":      {CategoryCrypto, "DeFi"},
	"NFT":       {CategoryCrypto, "NFT"},
	"Web3":      {CategoryCrypto, "Web3"},
	"리플":        {CategoryCrypto, "XRP"}, "XRP": {CategoryCrypto, "XRP"},
	"Ripple":     {CategoryCrypto, "XRP"},
	"stablecoin": {CategoryCrypto, "Stablecoin"},
	"USDT":       {CategoryCrypto, "USDT"},
	"USDC":       {CategoryCrypto, "USDC"},
}

var indices = map[string]DictEntry{
	"코스피": {CategoryIndex, "KOSPI"}, "KOSPI": {CategoryIndex, "KOSPI"},
	"코스닥": {CategoryIndex, "KOSDAQ"}, "KOSDAQ": {CategoryIndex, "KOSDAQ"},
	"나스닥": {CategoryIndex, "NASDAQ"}, "NASDAQ": {CategoryIndex, "NASDAQ"},
	"S&P 500": {CategoryIndex, "S&P 500"}, "S&P": {CategoryIndex, "S&P 500"},
	"다우": {CategoryIndex, "Dow Jones"}, "Dow Jones": {CategoryIndex, "Dow Jones"},
	"니케이": {CategoryIndex, "Nikkei"}, "Nikkei": {CategoryIndex, "Nikkei"},
	"항셍": {CategoryIndex, "Hang Seng"}, "Hang Seng": {CategoryIndex, "Hang Seng"},
	"FTSE":         {CategoryIndex, "FTSE"},
	"DAX":          {CategoryIndex, "DAX"},
	"Russell 2000": {CategoryIndex, "Russell 2000"},
}

var macroFinance = map[string]DictEntry{
	"금리": {CategoryMacro, "Interest Rate"}, "interest rate": {CategoryMacro, "Interest Rate"},
	"인플레이션": {CategoryMacro, "Inflation"}, "inflation": {CategoryMacro, "Inflation"},
	"관세": {CategoryMacro, "Tariff"}, "tariff": {CategoryMacro, "Tariff"},
	"환율":        {CategoryMacro, "Exchange Rate"},
	"recession": {CategoryMacro, "Recession"}, "경기침체": {CategoryMacro, "Recession"},
	"GDP":                      {CategoryMacro, "GDP"},
	"CPI":                      {CategoryMacro, "CPI"},
	"yield curve":              {CategoryMacro, "Yield Curve"},
	"quantitative easing":      {CategoryMacro, "Quantitative Easing"},
	"quantitative tightening":  {CategoryMacro, "Quantitative Tightening"},
	"Fed":                      {CategoryInstitution, "Federal Reserve"},
	"Federal Reserve":          {CategoryInstitution, "Federal Reserve"},
	"연준":                       {CategoryInstitution, "Federal Reserve"},
	"ECB":                      {CategoryInstitution, "ECB"},
	"BOJ":                      {CategoryInstitution, "BOJ"},
	"한국은행":                     {CategoryInstitution, "Bank of Korea"},
	"treasury":                 {CategoryProduct, "Treasury"},
	"국채":                       {CategoryProduct, "Government Bond"},
	"채권":                       {CategoryProduct, "Bond"},
	"bond":                     {CategoryProduct, "Bond"},
	"ETF":                      {CategoryProduct, "ETF"},
	"IPO":                      {CategoryMacro, "IPO"},
}

var commodities = map[string]DictEntry{
	"금값": {CategoryCommodity, "Gold"}, "gold": {CategoryCommodity, "Gold"},
	"유가": {CategoryCommodity, "Oil"}, "원유": {CategoryCommodity, "Oil"},
	"천연가스": {CategoryCommodity, "Natural Gas"}, "natural gas": {CategoryCommodity, "Natural Gas"},
	"구리": {CategoryCommodity, "Copper"}, "copper": {CategoryCommodity, "Copper"},
}

var countries = map[string]DictEntry{
	"미국": {CategoryCountry, "US"}, "중국": {CategoryCountry, "CN"}, "일본": {CategoryCountry, "JP"},
	"한국": {CategoryCountry, "KR"}, "유럽": {CategoryRegion, "EU"}, "독일": {CategoryCountry, "DE"},
	"영국": {CategoryCountry, "UK"}, "인도": {CategoryCountry, "IN"}, "대만": {CategoryCountry, "TW"},
}

var people = map[string]DictEntry{
	"트럼프": {CategoryPerson, "Trump"}, "Trump": {CategoryPerson, "Trump"},
	"바이든": {CategoryPerson, "Biden"}, "Biden": {CategoryPerson, "Biden"},
	"머스크": {CategoryPerson, "Elon Musk"}, "Elon Musk": {CategoryPerson, "Elon Musk"},
	"파월": {CategoryPerson, "Jerome Powell"}, "Jerome Powell": {CategoryPerson, "Jerome Powell"},
	"버핏": {CategoryPerson, "Warren Buffett"}, "Warren Buffett": {CategoryPerson, "Warren Buffett"},
	"Sam Altman": {CategoryPerson, "Sam Altman"}, "샘 알트만": {CategoryPerson, "Sam Altman"},
	"Jensen Huang": {CategoryPerson, "Jensen Huang"}, "젠슨 황": {CategoryPerson, "Jensen Huang"},
	"Satya Nadella": {CategoryPerson, "Satya Nadella"},
	"Tim Cook":      {CategoryPerson, "Tim Cook"}, "팀 쿡": {CategoryPerson, "Tim Cook"},
	"Mark Zuckerberg": {CategoryPerson, "Mark Zuckerberg"}, "저커버그": {CategoryPerson, "Mark Zuckerberg"},
	"Sundar Pichai": {CategoryPerson, "Sundar Pichai"},
	"Jeff Bezos":    {CategoryPerson, "Jeff Bezos"}, "베이조스": {CategoryPerson, "Jeff Bezos"},
	"Linus Torvalds":  {CategoryPerson, "Linus Torvalds"},
	"Andrej Karpathy": {CategoryPerson, "Andrej Karpathy"},
	"Yann LeCun":      {CategoryPerson, "Yann LeCun"},
	"Demis Hassabis":  {CategoryPerson, "Demis Hassabis"},
	"이재용":             {CategoryPerson, "Jay Y. Lee"},
}

var sectors = map[string]DictEntry{
	"반도체": {CategorySector, "Semiconductor"}, "semiconductor": {CategorySector, "Semiconductor"},
	"부동산": {CategorySector, "Real Estate"}, "real estate": {CategorySector, "Real Estate"},
	"electric vehicle": {CategorySector, "Electric Vehicle"}, "EV": {CategorySector, "Electric Vehicle"},
	"전기차":                {CategorySector, "Electric Vehicle"},
	"autonomous driving": {CategorySector, "Autonomous Driving"}, "자율주행": {CategorySector, "Autonomous Driving"},
	"quantum computing": {CategorySector, "Quantum Computing"}, "양자컴퓨팅": {CategorySector, "Quantum Computing"},
	"blockchain": {CategorySector, "Blockchain"}, "블록체인": {CategorySector, "Blockchain"},
	"cloud computing": {CategorySector, "Cloud Computing"}, "클라우드": {CategorySector, "Cloud Computing"},
	"cybersecurity": {CategorySector, "Cybersecurity"}, "사이버보안": {CategorySector, "Cybersecurity"},
	"biotech": {CategorySector, "Biotech"}, "바이오": {CategorySector, "Biotech"},
	"fintech": {CategorySector, "Fintech"}, "핀테크": {CategorySector, "Fintech"},
	"edtech":   {CategorySector, "Edtech"},
	"robotics": {CategorySector, "Robotics"}, "로봇": {CategorySector, "Robotics"},
	"SaaS":      {CategorySector, "SaaS"},
	"metaverse": {CategorySector, "Metaverse"}, "메타버스": {CategorySector, "Metaverse"},
}

// defaultDict is the merged default entity dictionary, built once at init.
var defaultDict = mergeDicts(
	companiesKR, companiesGlobal, aiML, programming,
	cryptoAssets, indices, macroFinance, commodities,
	countries, people, sectors,
)

func mergeDicts(dicts ...map[string]DictEntry) map[string]DictEntry {
	merged := make(map[string]DictEntry)
	for _, d := range dicts {
		for k, v := range d {
			merged[k] = v
		}
	}
	return merged
}

// DefaultDictionarySize reports the number of distinct surface keywords in
// the built-in dictionary. Used by tests and diagnostics.
func DefaultDictionarySize() int {
	return len(defaultDict)
}
